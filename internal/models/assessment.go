package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssessmentRecord is one scored MBTI submission, kept as history.
type AssessmentRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   string             `bson:"user_id" json:"userId"`
	Answers  []int              `bson:"answers" json:"answers"`
	Scores   map[string]int     `bson:"scores" json:"scores"` // EI|SN|TF|JP -> group sum
	MBTIType string             `bson:"mbti_type" json:"mbtiType"`

	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
}
