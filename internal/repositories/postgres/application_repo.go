package postgres

import (
	"context"
	"time"

	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	// CreateIfAbsent inserts a only when no row exists for the same
	// (user_id, job_posting_id). created is false on conflict.
	CreateIfAbsent(ctx context.Context, a *models.Application) (created bool, err error)
	FindByIDForUser(ctx context.Context, id, userID string) (*models.Application, error)
	FindByID(ctx context.Context, id string) (*models.Application, error)
	// DeletePending removes the row only if it is still owned by userID and PENDING.
	DeletePending(ctx context.Context, id, userID string) (deleted bool, err error)
	LatestByUser(ctx context.Context, userID string, limit int) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) CreateIfAbsent(ctx context.Context, a *models.Application) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_posting_id"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *applicationRepo) FindByIDForUser(ctx context.Context, id, userID string) (*models.Application, error) {
	if !validIDs(id, userID) {
		return nil, utils.ErrNotFound
	}
	var a models.Application
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&a).Error
	if err != nil {
		return nil, lookupErr(err)
	}
	return &a, nil
}

func (r *applicationRepo) FindByID(ctx context.Context, id string) (*models.Application, error) {
	if !validIDs(id) {
		return nil, utils.ErrNotFound
	}
	var a models.Application
	err := r.db.WithContext(ctx).
		Preload("JobPosting").
		Where("id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, lookupErr(err)
	}
	return &a, nil
}

func (r *applicationRepo) DeletePending(ctx context.Context, id, userID string) (bool, error) {
	if !validIDs(id, userID) {
		return false, nil
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, models.ApplicationPending).
		Delete(&models.Application{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *applicationRepo) LatestByUser(ctx context.Context, userID string, limit int) ([]models.Application, error) {
	var out []models.Application
	if !validIDs(userID) {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Preload("JobPosting").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var out []models.Application
	if !validIDs(jobID) {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Preload("JobPosting").
		Preload("User").
		Preload("User.Profile").
		Where("job_posting_id = ?", jobID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	if !validIDs(id) {
		return nil, utils.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, lookupErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrNotFound
	}
	return r.FindByID(ctx, id)
}
