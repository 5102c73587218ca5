package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/utils"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// CreateWithProfile inserts the user and its empty profile atomically.
	CreateWithProfile(ctx context.Context, u *models.User, p *models.Profile) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		Take(&u).Error
	if err != nil {
		return nil, lookupErr(err)
	}
	return &u, nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !validIDs(id) {
		return nil, utils.ErrNotFound
	}
	var u models.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", id).
		Take(&u).Error
	if err != nil {
		return nil, lookupErr(err)
	}
	return &u, nil
}

func (r *userRepo) CreateWithProfile(ctx context.Context, u *models.User, p *models.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ErrDuplicate
			}
			return err
		}
		p.UserID = u.ID
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		u.Profile = p
		return nil
	})
}
