package offers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/internal/pricing"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
	pkgerrors "github.com/geoshop/geoshop-backend/pkg/errors"
)

// Service exposes store offer management plus the public availability reads.
type Service interface {
	CreateOffer(ctx context.Context, storeID uuid.UUID, input CreateOfferInput) (*OfferDTO, error)
	UpdateOffer(ctx context.Context, storeID, offerID uuid.UUID, input UpdateOfferInput) (*OfferDTO, error)
	DeleteOffer(ctx context.Context, storeID, offerID uuid.UUID) error
	GetOffer(ctx context.Context, offerID uuid.UUID) (*OfferDTO, error)
	ListStoreOffers(ctx context.Context, storeID uuid.UUID) ([]OfferDTO, error)
	ListAllOffers(ctx context.Context) ([]OfferDTO, error)
	ListAvailableStores(ctx context.Context, productID uuid.UUID, quantity int) ([]pricing.StoreQuote, error)
}

// CreateOfferInput holds the validated payload to list an offer.
type CreateOfferInput struct {
	ProductID       uuid.UUID
	Price           decimal.Decimal
	BulkPrice       *decimal.Decimal
	BulkMinQuantity *int
	LoyaltyPrice    *decimal.Decimal
	IsActive        *bool
}

// UpdateOfferInput holds optional mutation values for an offer. Bulk fields
// are replaced as a pair so the invariant stays checkable.
type UpdateOfferInput struct {
	Price           *decimal.Decimal
	BulkPrice       *decimal.Decimal
	BulkMinQuantity *int
	ClearBulk       bool
	LoyaltyPrice    *decimal.Decimal
	ClearLoyalty    bool
	IsActive        *bool
}

// catalogReader checks that the referenced product exists.
type catalogReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
}

// planLimitReader reports the offer cap from the store's active plan, nil
// when the store carries no active plan.
type planLimitReader interface {
	ActiveProductLimit(ctx context.Context, storeID uuid.UUID) (*int, error)
}

type service struct {
	repo       OfferRepository
	catalog    catalogReader
	planLimits planLimitReader
}

// NewService constructs an offers service instance.
func NewService(repo OfferRepository, catalog catalogReader, planLimits planLimitReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("offer repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if planLimits == nil {
		return nil, fmt.Errorf("plan limit reader required")
	}
	return &service{repo: repo, catalog: catalog, planLimits: planLimits}, nil
}

// CreateOffer lists a priced offer against a catalog item.
func (s *service) CreateOffer(ctx context.Context, storeID uuid.UUID, input CreateOfferInput) (*OfferDTO, error) {
	if err := validatePricing(input.Price, input.BulkPrice, input.BulkMinQuantity, input.LoyaltyPrice); err != nil {
		return nil, err
	}

	if _, err := s.catalog.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load catalog item")
	}

	if err := s.ensureWithinPlanLimit(ctx, storeID); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	offer := &models.StoreOffer{
		StoreID:         storeID,
		ProductID:       input.ProductID,
		Price:           input.Price,
		BulkPrice:       input.BulkPrice,
		BulkMinQuantity: input.BulkMinQuantity,
		LoyaltyPrice:    input.LoyaltyPrice,
		IsActive:        isActive,
	}

	created, err := s.repo.CreateOffer(ctx, offer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert store offer")
	}
	return NewOfferDTO(created), nil
}

// UpdateOffer mutates an offer owned by the calling store.
func (s *service) UpdateOffer(ctx context.Context, storeID, offerID uuid.UUID, input UpdateOfferInput) (*OfferDTO, error) {
	offer, err := s.loadOwnedOffer(ctx, storeID, offerID)
	if err != nil {
		return nil, err
	}

	if err := applyUpdateToOffer(offer, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateOffer(ctx, offer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update store offer")
	}
	return NewOfferDTO(updated), nil
}

// DeleteOffer removes an offer owned by the calling store.
func (s *service) DeleteOffer(ctx context.Context, storeID, offerID uuid.UUID) error {
	if _, err := s.loadOwnedOffer(ctx, storeID, offerID); err != nil {
		return err
	}
	if err := s.repo.DeleteOffer(ctx, offerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete store offer")
	}
	return nil
}

// GetOffer returns a single offer by ID.
func (s *service) GetOffer(ctx context.Context, offerID uuid.UUID) (*OfferDTO, error) {
	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load store offer")
	}
	return NewOfferDTO(offer), nil
}

// ListStoreOffers lists the offers owned by the given store.
func (s *service) ListStoreOffers(ctx context.Context, storeID uuid.UUID) ([]OfferDTO, error) {
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list store offers")
	}
	return NewOfferDTOs(rows), nil
}

// ListAllOffers returns every offer across stores for back-office review.
func (s *service) ListAllOffers(ctx context.Context) ([]OfferDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list all offers")
	}
	return NewOfferDTOs(rows), nil
}

// ListAvailableStores quotes every store with an active offer for the
// product, sorted by the effective price at the requested quantity.
func (s *service) ListAvailableStores(ctx context.Context, productID uuid.UUID, quantity int) ([]pricing.StoreQuote, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if _, err := s.catalog.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load catalog item")
	}

	rows, err := s.repo.ListActiveByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list active offers")
	}
	return pricing.ListAvailableStores(quantity, rows), nil
}

func (s *service) ensureWithinPlanLimit(ctx context.Context, storeID uuid.UUID) error {
	limit, err := s.planLimits.ActiveProductLimit(ctx, storeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load active plan limit")
	}
	if limit == nil {
		return nil
	}

	count, err := s.repo.CountActiveByStore(ctx, storeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count active offers")
	}
	if count >= int64(*limit) {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("active plan allows at most %d listed offers", *limit))
	}
	return nil
}

func (s *service) loadOwnedOffer(ctx context.Context, storeID, offerID uuid.UUID) (*models.StoreOffer, error) {
	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load store offer")
	}
	if offer.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "offer belongs to another store")
	}
	return offer, nil
}

func validatePricing(price decimal.Decimal, bulkPrice *decimal.Decimal, bulkMinQuantity *int, loyaltyPrice *decimal.Decimal) error {
	if price.IsNegative() || price.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if (bulkPrice == nil) != (bulkMinQuantity == nil) {
		return pkgerrors.New(pkgerrors.CodeValidation, "bulk_price and bulk_min_quantity must be set together")
	}
	if bulkPrice != nil {
		if bulkPrice.IsNegative() || bulkPrice.IsZero() {
			return pkgerrors.New(pkgerrors.CodeValidation, "bulk_price must be positive")
		}
		if *bulkMinQuantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "bulk_min_quantity must be positive")
		}
	}
	if loyaltyPrice != nil && (loyaltyPrice.IsNegative() || loyaltyPrice.IsZero()) {
		return pkgerrors.New(pkgerrors.CodeValidation, "loyalty_price must be positive")
	}
	return nil
}

func applyUpdateToOffer(offer *models.StoreOffer, input UpdateOfferInput) error {
	price := offer.Price
	if input.Price != nil {
		price = *input.Price
	}

	bulkPrice := offer.BulkPrice
	bulkMinQuantity := offer.BulkMinQuantity
	if input.ClearBulk {
		bulkPrice = nil
		bulkMinQuantity = nil
	}
	if input.BulkPrice != nil {
		bulkPrice = input.BulkPrice
	}
	if input.BulkMinQuantity != nil {
		bulkMinQuantity = input.BulkMinQuantity
	}

	loyaltyPrice := offer.LoyaltyPrice
	if input.ClearLoyalty {
		loyaltyPrice = nil
	}
	if input.LoyaltyPrice != nil {
		loyaltyPrice = input.LoyaltyPrice
	}

	if err := validatePricing(price, bulkPrice, bulkMinQuantity, loyaltyPrice); err != nil {
		return err
	}

	offer.Price = price
	offer.BulkPrice = bulkPrice
	offer.BulkMinQuantity = bulkMinQuantity
	offer.LoyaltyPrice = loyaltyPrice
	if input.IsActive != nil {
		offer.IsActive = *input.IsActive
	}
	return nil
}
