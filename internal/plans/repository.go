package plans

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/internal/repo"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

// PlanRepository defines persistence for plans and store subscriptions.
type PlanRepository interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	FindPlanByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	CreateSubscription(ctx context.Context, sub *models.StoreSubscription) (*models.StoreSubscription, error)
	UpdateSubscription(ctx context.Context, sub *models.StoreSubscription) (*models.StoreSubscription, error)
	FindSubscription(ctx context.Context, id uuid.UUID) (*models.StoreSubscription, error)
	ListSubscriptionsByStore(ctx context.Context, storeID uuid.UUID) ([]models.StoreSubscription, error)
	SetActivePlan(ctx context.Context, userID, planID uuid.UUID) error
	ActiveProductLimit(ctx context.Context, storeID uuid.UUID) (*int, error)
}

// Repository persists plans and subscriptions through GORM.
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

// ListPlans returns every plan ordered by name (A first).
func (r *Repository) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var rows []models.Plan
	err := r.DB(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// FindPlanByID loads a plan by ID.
func (r *Repository) FindPlanByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	if err := r.DB(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateSubscription inserts a new subscription row.
func (r *Repository) CreateSubscription(ctx context.Context, sub *models.StoreSubscription) (*models.StoreSubscription, error) {
	if err := r.DB(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateSubscription updates an existing subscription row.
func (r *Repository) UpdateSubscription(ctx context.Context, sub *models.StoreSubscription) (*models.StoreSubscription, error) {
	if err := r.DB(ctx).Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// FindSubscription loads a subscription with its plan.
func (r *Repository) FindSubscription(ctx context.Context, id uuid.UUID) (*models.StoreSubscription, error) {
	var sub models.StoreSubscription
	if err := r.DB(ctx).Preload("Plan").First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubscriptionsByStore returns the store's subscriptions, newest first.
func (r *Repository) ListSubscriptionsByStore(ctx context.Context, storeID uuid.UUID) ([]models.StoreSubscription, error) {
	var rows []models.StoreSubscription
	err := r.DB(ctx).
		Preload("Plan").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// SetActivePlan points the user's active plan at the given plan.
func (r *Repository) SetActivePlan(ctx context.Context, userID, planID uuid.UUID) error {
	return r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("active_plan_id", planID).
		Error
}

// ActiveProductLimit returns the product limit of the store's active plan,
// nil when the store has no active plan.
func (r *Repository) ActiveProductLimit(ctx context.Context, storeID uuid.UUID) (*int, error) {
	var user models.User
	if err := r.DB(ctx).Select("active_plan_id").First(&user, "id = ?", storeID).Error; err != nil {
		return nil, err
	}
	if user.ActivePlanID == nil {
		return nil, nil
	}

	plan, err := r.FindPlanByID(ctx, *user.ActivePlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	limit := plan.ProductLimit
	return &limit, nil
}
