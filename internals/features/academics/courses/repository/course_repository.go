package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/academics/courses/model"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository { return &CourseRepository{DB: db} }

// FindByID mengembalikan (nil, nil) kalau course tidak ada.
func (r *CourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CourseModel, error) {
	var m model.CourseModel
	err := r.DB.WithContext(ctx).
		Where("course_id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CourseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.CourseModel{}).
		Where("course_id = ?", id).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
