package models

import (
	"time"

	"gorm.io/datatypes"
)

type Profile struct {
	UserID    string  `gorm:"column:user_id;type:uuid;primaryKey" json:"userId"`
	FirstName string  `gorm:"column:first_name;type:text" json:"firstName"`
	LastName  string  `gorm:"column:last_name;type:text" json:"lastName"`
	Phone     *string `gorm:"column:phone;type:text" json:"phone"`

	MBTIType      *string `gorm:"column:mbti_type;type:text" json:"mbtiType"`
	MBTICompleted bool    `gorm:"column:mbti_completed;not null;default:false" json:"mbtiCompleted"`
	// group sums of the last server-scored assessment, {"EI":..,"SN":..,"TF":..,"JP":..}
	MBTIScores datatypes.JSON `gorm:"column:mbti_scores;type:jsonb" json:"mbtiScores,omitempty"`

	ResumeURL      *string `gorm:"column:resume_url;type:text" json:"resumeUrl"`
	CertificateURL *string `gorm:"column:certificate_url;type:text" json:"certificateUrl"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

// Document kinds a student must have on file before applying.
const (
	DocumentResume      = "resume"
	DocumentCertificate = "certificate"
)

// MissingDocuments lists the absent documents in a stable order.
func (p *Profile) MissingDocuments() []string {
	var missing []string
	if p.ResumeURL == nil || *p.ResumeURL == "" {
		missing = append(missing, DocumentResume)
	}
	if p.CertificateURL == nil || *p.CertificateURL == "" {
		missing = append(missing, DocumentCertificate)
	}
	return missing
}
