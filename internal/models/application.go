package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application is unique per (user_id, job_posting_id).
type Application struct {
	ID           string            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       string            `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"userId"`
	JobPostingID string            `gorm:"column:job_posting_id;type:uuid;not null;uniqueIndex:idx_applications_user_job;index" json:"jobPostingId"`
	Status       ApplicationStatus `gorm:"column:status;type:text;not null;default:PENDING" json:"status"`
	CreatedAt    time.Time         `gorm:"column:created_at;type:timestamptz;index" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`

	JobPosting *JobPosting `gorm:"foreignKey:JobPostingID;references:ID" json:"-"`
	User       *User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Application) TableName() string { return "applications" }

type JobRef struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// ApplicationView is an application with the posting fields the dashboard shows.
type ApplicationView struct {
	Application
	JobPosting JobRef `json:"jobPosting"`
}

func ViewOf(a Application) ApplicationView {
	v := ApplicationView{Application: a}
	if a.JobPosting != nil {
		v.JobPosting = JobRef{Title: a.JobPosting.Title, Company: a.JobPosting.Company}
	}
	return v
}

type Applicant struct {
	Email          string  `json:"email"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	MBTIType       *string `json:"mbtiType"`
	ResumeURL      *string `json:"resumeUrl"`
	CertificateURL *string `json:"certificateUrl"`
}

// ApplicantView is what admins see when reviewing applications for a posting.
type ApplicantView struct {
	Application
	Applicant Applicant `json:"applicant"`
}

func ApplicantOf(a Application) ApplicantView {
	v := ApplicantView{Application: a}
	if a.User != nil {
		v.Applicant.Email = a.User.Email
		if p := a.User.Profile; p != nil {
			v.Applicant.FirstName = p.FirstName
			v.Applicant.LastName = p.LastName
			v.Applicant.MBTIType = p.MBTIType
			v.Applicant.ResumeURL = p.ResumeURL
			v.Applicant.CertificateURL = p.CertificateURL
		}
	}
	return v
}
