package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/model"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, courseID string) (*model.Course, error)
	FindMany(ctx context.Context, courseIDs []string) ([]*model.Course, error)
	FindByCreator(ctx context.Context, creatorID string) ([]*model.Course, error)
	FindAll(ctx context.Context) ([]*model.Course, error)
}

type courseRepoImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepoImpl{
		db: db,
	}
}

func (r *courseRepoImpl) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// Update only touches rows owned by course.CreatorID; a non-owner update
// matches nothing and surfaces as not found.
func (r *courseRepoImpl) Update(ctx context.Context, course *model.Course) error {
	result := r.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ? AND creator_id = ?", course.ID, course.CreatorID).
		Updates(map[string]interface{}{
			"title":       course.Title,
			"description": course.Description,
			"price":       course.Price,
			"image_url":   course.ImageURL,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepoImpl) FindByID(ctx context.Context, courseID string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("id = ?", courseID).
		First(&course).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrCourseNotFound
		}
		return nil, err
	}

	return &course, nil
}

func (r *courseRepoImpl) FindMany(ctx context.Context, courseIDs []string) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.db.WithContext(ctx).
		Where("id IN ?", courseIDs).
		Find(&courses).Error

	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepoImpl) FindByCreator(ctx context.Context, creatorID string) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Find(&courses).Error

	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepoImpl) FindAll(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.db.WithContext(ctx).Find(&courses).Error
	if err != nil {
		return nil, err
	}

	return courses, nil
}
