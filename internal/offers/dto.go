package offers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

// OfferDTO is the API shape of a store offer.
type OfferDTO struct {
	ID              uuid.UUID        `json:"id"`
	StoreID         uuid.UUID        `json:"store_id"`
	ProductID       uuid.UUID        `json:"product_id"`
	ProductName     string           `json:"product_name,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	BulkPrice       *decimal.Decimal `json:"bulk_price,omitempty"`
	BulkMinQuantity *int             `json:"bulk_min_quantity,omitempty"`
	LoyaltyPrice    *decimal.Decimal `json:"loyalty_price,omitempty"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NewOfferDTO maps the model into the API shape.
func NewOfferDTO(offer *models.StoreOffer) *OfferDTO {
	if offer == nil {
		return nil
	}
	dto := &OfferDTO{
		ID:              offer.ID,
		StoreID:         offer.StoreID,
		ProductID:       offer.ProductID,
		Price:           offer.Price,
		BulkPrice:       offer.BulkPrice,
		BulkMinQuantity: offer.BulkMinQuantity,
		LoyaltyPrice:    offer.LoyaltyPrice,
		IsActive:        offer.IsActive,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
	}
	if offer.Product != nil {
		dto.ProductName = offer.Product.Name
	}
	return dto
}

// NewOfferDTOs maps a slice of models.
func NewOfferDTOs(rows []models.StoreOffer) []OfferDTO {
	out := make([]OfferDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewOfferDTO(&rows[i]))
	}
	return out
}
