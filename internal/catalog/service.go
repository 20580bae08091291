package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	pkgerrors "github.com/geoshop/geoshop-backend/pkg/errors"
)

// Service exposes admin catalog management plus public reads.
type Service interface {
	CreateItem(ctx context.Context, adminID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error)
	ListItems(ctx context.Context, filters ListFilters) ([]ItemDTO, error)
}

// CreateItemInput holds the validated payload to publish a catalog item.
type CreateItemInput struct {
	Name        string
	PackageType enums.PackageType
	WeightUnit  enums.WeightUnit
	Quantity    decimal.Decimal
	Description *string
	ImageURL    *string
}

// UpdateItemInput holds optional mutation values for a catalog item.
type UpdateItemInput struct {
	Name        *string
	PackageType *enums.PackageType
	WeightUnit  *enums.WeightUnit
	Quantity    *decimal.Decimal
	Description *string
	ImageURL    *string
}

type service struct {
	repo ItemRepository
}

// NewService constructs a catalog service instance.
func NewService(repo ItemRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// CreateItem publishes a new generic product definition.
func (s *service) CreateItem(ctx context.Context, adminID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.PackageType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid package_type %q", input.PackageType))
	}
	if !input.WeightUnit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid weight_unit %q", input.WeightUnit))
	}
	if !input.Quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	item := &models.CatalogItem{
		AdminID:     adminID,
		Name:        name,
		PackageType: input.PackageType,
		WeightUnit:  input.WeightUnit,
		Quantity:    input.Quantity,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert catalog item")
	}
	return NewItemDTO(created), nil
}

// UpdateItem applies a partial update to an existing item.
func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := applyUpdateToItem(item, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update catalog item")
	}
	return NewItemDTO(updated), nil
}

// DeleteItem removes the item. Offers and cart lines cascade in the schema.
func (s *service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete catalog item")
	}
	return nil
}

// GetItem returns a single item by ID.
func (s *service) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return NewItemDTO(item), nil
}

// ListItems returns catalog items visible to every authenticated role.
func (s *service) ListItems(ctx context.Context, filters ListFilters) ([]ItemDTO, error) {
	rows, err := s.repo.ListItems(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list catalog items")
	}
	return NewItemDTOs(rows), nil
}

func (s *service) loadItem(ctx context.Context, itemID uuid.UUID) (*models.CatalogItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load catalog item")
	}
	return item, nil
}

func applyUpdateToItem(item *models.CatalogItem, input UpdateItemInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		item.Name = name
	}
	if input.PackageType != nil {
		if !input.PackageType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid package_type %q", *input.PackageType))
		}
		item.PackageType = *input.PackageType
	}
	if input.WeightUnit != nil {
		if !input.WeightUnit.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid weight_unit %q", *input.WeightUnit))
		}
		item.WeightUnit = *input.WeightUnit
	}
	if input.Quantity != nil {
		if !input.Quantity.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		item.Quantity = *input.Quantity
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	return nil
}
