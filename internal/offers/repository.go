package offers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/internal/repo"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

// OfferRepository defines persistence for store offers.
type OfferRepository interface {
	CreateOffer(context.Context, *models.StoreOffer) (*models.StoreOffer, error)
	UpdateOffer(context.Context, *models.StoreOffer) (*models.StoreOffer, error)
	DeleteOffer(context.Context, uuid.UUID) error
	FindByID(context.Context, uuid.UUID) (*models.StoreOffer, error)
	ListByStore(context.Context, uuid.UUID) ([]models.StoreOffer, error)
	ListAll(context.Context) ([]models.StoreOffer, error)
	ListActiveByProduct(context.Context, uuid.UUID) ([]models.StoreOffer, error)
	CountActiveByStore(context.Context, uuid.UUID) (int64, error)
}

// Repository persists store offers through GORM.
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

// CreateOffer inserts a new offer row.
func (r *Repository) CreateOffer(ctx context.Context, offer *models.StoreOffer) (*models.StoreOffer, error) {
	if err := r.DB(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// UpdateOffer updates an existing offer row.
func (r *Repository) UpdateOffer(ctx context.Context, offer *models.StoreOffer) (*models.StoreOffer, error) {
	if err := r.DB(ctx).Save(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// DeleteOffer removes an offer by ID.
func (r *Repository) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.StoreOffer{}).Error
}

// FindByID loads an offer with its product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.StoreOffer, error) {
	var offer models.StoreOffer
	if err := r.DB(ctx).Preload("Product").First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListByStore lists a store's offers, newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.StoreOffer, error) {
	var rows []models.StoreOffer
	err := r.DB(ctx).
		Preload("Product").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListAll returns every offer across stores, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.StoreOffer, error) {
	var rows []models.StoreOffer
	err := r.DB(ctx).
		Preload("Product").
		Preload("Store").
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListActiveByProduct returns active offers for the product in insertion
// order. The selection engine relies on this order for tie-breaking.
func (r *Repository) ListActiveByProduct(ctx context.Context, productID uuid.UUID) ([]models.StoreOffer, error) {
	var rows []models.StoreOffer
	err := r.DB(ctx).
		Preload("Store").
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// CountActiveByStore counts the store's active offers for plan limit checks.
func (r *Repository) CountActiveByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.StoreOffer{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Count(&count).
		Error
	return count, err
}
