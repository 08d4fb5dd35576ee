package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gormModels "aerocost/api/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

func (r *UserRepositoryGORM) GetByID(ctx context.Context, id string) (*gormModels.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail matches case-insensitively; emails are stored lower-cased.
func (r *UserRepositoryGORM) GetByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepositoryGORM) List(ctx context.Context) ([]gormModels.User, error) {
	var users []gormModels.User
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepositoryGORM) Create(ctx context.Context, user *gormModels.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepositoryGORM) Update(ctx context.Context, user *gormModels.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepositoryGORM) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&gormModels.User{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepositoryGORM) first(ctx context.Context, cond string, arg interface{}) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}
