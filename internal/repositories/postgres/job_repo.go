package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/utils"
	"gorm.io/gorm"
)

type JobFilter struct {
	MBTIType string // exact code, matched against mbti_types
	Query    string // substring of title, company or location
	Limit    int
}

type JobRepository interface {
	// ListOpen returns postings with an open status and deadline >= now, newest first.
	ListOpen(ctx context.Context, now time.Time, f JobFilter) ([]models.JobPosting, error)
	ListAll(ctx context.Context) ([]models.JobPosting, error)
	FindOpenByID(ctx context.Context, id string, now time.Time) (*models.JobPosting, error)
	FindByID(ctx context.Context, id string) (*models.JobPosting, error)
	Create(ctx context.Context, j *models.JobPosting) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.JobPosting, error)
	// ListMissingDetails returns postings lacking responsibilities, benefits or employment type.
	ListMissingDetails(ctx context.Context) ([]models.JobPosting, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) openScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status IN ? AND deadline >= ?", models.OpenJobStatuses, now)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *jobRepo) ListOpen(ctx context.Context, now time.Time, f JobFilter) ([]models.JobPosting, error) {
	q := r.db.WithContext(ctx).
		Model(&models.JobPosting{}).
		Scopes(r.openScope(now))

	if f.MBTIType != "" {
		q = q.Where("? = ANY(mbti_types)", f.MBTIType)
	}
	if f.Query != "" {
		like := containsPattern(f.Query)
		q = q.Where(`title ILIKE ? ESCAPE '\' OR company ILIKE ? ESCAPE '\' OR location ILIKE ? ESCAPE '\'`, like, like, like)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []models.JobPosting
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *jobRepo) ListAll(ctx context.Context) ([]models.JobPosting, error) {
	var out []models.JobPosting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *jobRepo) FindOpenByID(ctx context.Context, id string, now time.Time) (*models.JobPosting, error) {
	if !validIDs(id) {
		return nil, utils.ErrNotFound
	}
	var j models.JobPosting
	err := r.db.WithContext(ctx).
		Scopes(r.openScope(now)).
		Where("id = ?", id).
		Take(&j).Error
	if err != nil {
		return nil, lookupErr(err)
	}
	return &j, nil
}

func (r *jobRepo) FindByID(ctx context.Context, id string) (*models.JobPosting, error) {
	if !validIDs(id) {
		return nil, utils.ErrNotFound
	}
	var j models.JobPosting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&j).Error
	if err != nil {
		return nil, lookupErr(err)
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, j *models.JobPosting) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *jobRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.JobPosting, error) {
	if !validIDs(id) {
		return nil, utils.ErrNotFound
	}
	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		res := r.db.WithContext(ctx).
			Model(&models.JobPosting{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return nil, lookupErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, utils.ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *jobRepo) ListMissingDetails(ctx context.Context) ([]models.JobPosting, error) {
	var out []models.JobPosting
	err := r.db.WithContext(ctx).
		Where("responsibilities IS NULL OR responsibilities = '' OR benefits IS NULL OR benefits = '' OR employment_type IS NULL OR employment_type = ''").
		Find(&out).Error
	return out, err
}
