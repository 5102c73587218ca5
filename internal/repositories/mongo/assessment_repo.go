package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AssessmentCollection = "mbti_assessments"

type AssessmentRepository interface {
	Insert(ctx context.Context, rec *models.AssessmentRecord) error
	LatestByUser(ctx context.Context, userID string) (*models.AssessmentRecord, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.AssessmentRecord, error)
}

type assessmentRepo struct {
	col *mongo.Collection
}

func NewAssessmentRepo(db *mongo.Database) AssessmentRepository {
	return &assessmentRepo{col: db.Collection(AssessmentCollection)}
}

func (r *assessmentRepo) Insert(ctx context.Context, rec *models.AssessmentRecord) error {
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

func (r *assessmentRepo) LatestByUser(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	var rec models.AssessmentRecord
	opts := options.FindOne().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *assessmentRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AssessmentRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
