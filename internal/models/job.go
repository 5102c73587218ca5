package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/lib/pq"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "ACTIVE"
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

// OpenJobStatuses are the statuses under which students can see and apply to a posting.
var OpenJobStatuses = []JobStatus{JobStatusActive, JobStatusOpen}

func (s JobStatus) IsOpen() bool {
	for _, o := range OpenJobStatuses {
		if s == o {
			return true
		}
	}
	return false
}

type JobPosting struct {
	ID               string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title            string         `gorm:"column:title;type:text;not null" json:"title"`
	Company          string         `gorm:"column:company;type:text;not null" json:"company"`
	Location         string         `gorm:"column:location;type:text;not null" json:"location"`
	Salary           *string        `gorm:"column:salary;type:text" json:"salary"`
	Description      string         `gorm:"column:description;type:text;not null" json:"description"`
	Requirements     string         `gorm:"column:requirements;type:text" json:"requirements"`
	Responsibilities *string        `gorm:"column:responsibilities;type:text" json:"responsibilities"`
	Benefits         *string        `gorm:"column:benefits;type:text" json:"benefits"`
	EmploymentType   *string        `gorm:"column:employment_type;type:text" json:"employmentType"`
	MBTITypes        pq.StringArray `gorm:"column:mbti_types;type:text[]" json:"-"`
	Deadline         time.Time      `gorm:"column:deadline;type:timestamptz;index" json:"deadline"`
	Status           JobStatus      `gorm:"column:status;type:text;not null;index" json:"status"`
	AdminID          string         `gorm:"column:admin_id;type:uuid;index" json:"adminId"`
	CreatedAt        time.Time      `gorm:"column:created_at;type:timestamptz;index" json:"createdAt"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (JobPosting) TableName() string { return "job_postings" }

// MarshalJSON renders MBTI types as the comma list clients expect.
func (j JobPosting) MarshalJSON() ([]byte, error) {
	type alias JobPosting
	return json.Marshal(struct {
		alias
		MBTITypes *string `json:"mbtiTypes"`
	}{alias: alias(j), MBTITypes: joinTypes(j.MBTITypes)})
}

func (j *JobPosting) UnmarshalJSON(b []byte) error {
	type alias JobPosting
	aux := struct {
		*alias
		MBTITypes *string `json:"mbtiTypes"`
	}{alias: (*alias)(j)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	j.MBTITypes = nil
	if aux.MBTITypes != nil {
		j.MBTITypes = ParseMBTITypes(*aux.MBTITypes)
	}
	return nil
}

// OpenAt reports whether students can apply at the given instant.
func (j *JobPosting) OpenAt(now time.Time) bool {
	return j.Status.IsOpen() && !j.Deadline.Before(now)
}

// JobSummary is the reduced shape served by the recent-jobs feed.
type JobSummary struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Company   string  `json:"company"`
	Location  string  `json:"location"`
	MBTITypes *string `json:"mbtiTypes"`
}

func SummaryOf(j JobPosting) JobSummary {
	return JobSummary{
		ID:        j.ID,
		Title:     j.Title,
		Company:   j.Company,
		Location:  j.Location,
		MBTITypes: joinTypes(j.MBTITypes),
	}
}

// ParseMBTITypes splits a comma list into upper-cased, de-duplicated codes.
func ParseMBTITypes(s string) pq.StringArray {
	seen := map[string]struct{}{}
	out := pq.StringArray{}
	for _, part := range strings.Split(s, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

func joinTypes(types []string) *string {
	if len(types) == 0 {
		return nil
	}
	s := strings.Join(types, ",")
	return &s
}
