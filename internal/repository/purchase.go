package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/model"
)

type PurchaseRepository interface {
	// Upsert inserts the purchase keyed by (user, course, payment). Returns
	// false when a row for the same key already exists, which is how a
	// repeated verification of the same payment stays a no-op.
	Upsert(ctx context.Context, purchase *model.Purchase) (bool, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Purchase, error)
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) Upsert(ctx context.Context, purchase *model.Purchase) (bool, error) {
	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "course_id"}, {Name: "payment_id"},
		},
		DoNothing: true,
	}).Create(purchase)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *purchaseRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&purchases).Error

	if err != nil {
		return nil, err
	}

	return purchases, nil
}
