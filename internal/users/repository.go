package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/internal/repo"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	CreateUser(context.Context, *models.User) (*models.User, error)
	UpdateUser(context.Context, *models.User) (*models.User, error)
	DeleteUser(context.Context, uuid.UUID) error
	FindByID(context.Context, uuid.UUID) (*models.User, error)
	FindByUsername(context.Context, string) (*models.User, error)
	ListUsers(context.Context) ([]models.User, error)
}

// Repository persists users through GORM.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// CreateUser inserts a new user row.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser updates an existing user row.
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.DB(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user by ID.
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

// FindByID loads a user by ID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername loads a user by exact username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	var rows []models.User
	err := r.DB(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}
