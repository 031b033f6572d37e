package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/academics/users/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

// FindByID mengembalikan (nil, nil) kalau user tidak ada.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var m model.UserModel
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ExistsWithRole: ada user aktif dengan id + role tsb?
func (r *UserRepository) ExistsWithRole(ctx context.Context, id uuid.UUID, role string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("user_id = ? AND user_role = ?", id, role).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
