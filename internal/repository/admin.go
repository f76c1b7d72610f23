package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/model"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
}

type adminRepoImpl struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepoImpl{
		db: db,
	}
}

func (r *adminRepoImpl) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&admin).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &admin, nil
}
