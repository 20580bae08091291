package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/internal/repo"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

// ItemRepository defines CRUD operations for catalog items.
type ItemRepository interface {
	CreateItem(context.Context, *models.CatalogItem) (*models.CatalogItem, error)
	UpdateItem(context.Context, *models.CatalogItem) (*models.CatalogItem, error)
	DeleteItem(context.Context, uuid.UUID) error
	FindByID(context.Context, uuid.UUID) (*models.CatalogItem, error)
	ListItems(context.Context, ListFilters) ([]models.CatalogItem, error)
}

// ListFilters narrows the catalog listing.
type ListFilters struct {
	Query       string
	PackageType *string
}

// Repository persists catalog items through GORM.
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

// CreateItem inserts a new catalog item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	if err := r.DB(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem updates an existing catalog item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	if err := r.DB(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a catalog item by ID.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.CatalogItem{}).Error
}

// FindByID loads a catalog item without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.DB(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns catalog items matching the filters, newest first.
func (r *Repository) ListItems(ctx context.Context, filters ListFilters) ([]models.CatalogItem, error) {
	qb := r.DB(ctx).Model(&models.CatalogItem{})

	if search := strings.TrimSpace(filters.Query); search != "" {
		qb = qb.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if filters.PackageType != nil {
		qb = qb.Where("package_type = ?", *filters.PackageType)
	}

	var rows []models.CatalogItem
	err := qb.Order("created_at DESC").Find(&rows).Error
	return rows, err
}
