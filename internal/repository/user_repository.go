package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"usermgmt/internal/model"
)

// UserRepository defines account persistence operations. Bulk mutations run
// as single multi-row statements so the reported counts match exactly the
// rows touched.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	ListAll(ctx context.Context) ([]model.User, error)
	BulkUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error)
	BulkDelete(ctx context.Context, ids []uint) (int64, error)
	DeleteByStatus(ctx context.Context, status string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login_time", at).Error
}

// ListAll returns every account ordered by last login, most recent first.
// Accounts that never logged in sort last.
func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Order("last_login_time DESC NULLS LAST").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) BulkUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id IN ?", ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *userRepository) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.User{})
	return res.RowsAffected, res.Error
}

func (r *userRepository) DeleteByStatus(ctx context.Context, status string) (int64, error) {
	res := r.db.WithContext(ctx).Where("status = ?", status).Delete(&model.User{})
	return res.RowsAffected, res.Error
}
