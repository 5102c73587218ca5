package postgres

import (
	"context"
	"time"

	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// Update writes only the given columns.
	Update(ctx context.Context, userID string, fields map[string]any) (*models.Profile, error)
	SetDocument(ctx context.Context, userID, kind, url string) (*models.Profile, error)
	SetMBTI(ctx context.Context, userID, mbtiType string, scores datatypes.JSON) (*models.Profile, error)
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if !validIDs(userID) {
		return nil, utils.ErrNotFound
	}
	var p models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if err != nil {
		return nil, lookupErr(err)
	}
	return &p, nil
}

func (r *profileRepo) Update(ctx context.Context, userID string, fields map[string]any) (*models.Profile, error) {
	if !validIDs(userID) {
		return nil, utils.ErrNotFound
	}
	if len(fields) == 0 {
		return r.GetByUserID(ctx, userID)
	}
	fields["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return nil, lookupErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrNotFound
	}
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepo) SetDocument(ctx context.Context, userID, kind, url string) (*models.Profile, error) {
	col := "resume_url"
	if kind == models.DocumentCertificate {
		col = "certificate_url"
	}
	return r.Update(ctx, userID, map[string]any{col: url})
}

func (r *profileRepo) SetMBTI(ctx context.Context, userID, mbtiType string, scores datatypes.JSON) (*models.Profile, error) {
	fields := map[string]any{
		"mbti_type":      mbtiType,
		"mbti_completed": true,
	}
	if scores != nil {
		fields["mbti_scores"] = scores
	}
	return r.Update(ctx, userID, fields)
}
