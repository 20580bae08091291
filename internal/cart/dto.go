package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/internal/pricing"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

// LineDTO is the API shape of a single cart line.
type LineDTO struct {
	ID              uuid.UUID            `json:"id"`
	ProductID       uuid.UUID            `json:"product_id"`
	ProductName     string               `json:"product_name,omitempty"`
	Quantity        int                  `json:"quantity"`
	SelectedOfferID *uuid.UUID           `json:"selected_offer_id"`
	SelectedStoreID *uuid.UUID           `json:"selected_store_id"`
	StoreName       string               `json:"store_name,omitempty"`
	UnitPrice       *decimal.Decimal     `json:"unit_price"`
	LineTotal       *decimal.Decimal     `json:"line_total"`
	AvailableStores []pricing.StoreQuote `json:"available_stores,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// CartView is the full cart read model.
type CartView struct {
	ID              uuid.UUID                `json:"id"`
	ClientID        uuid.UUID                `json:"client_id"`
	IsCompleted     bool                     `json:"is_completed"`
	Items           []LineDTO                `json:"items"`
	TotalPrice      decimal.Decimal          `json:"total_price"`
	UnresolvedCount int                      `json:"unresolved_count"`
	BestStore       *pricing.BestStoreResult `json:"best_store"`
	CreatedAt       time.Time                `json:"created_at"`
}

// newLineDTO maps a line model; quotes may be nil when the caller skips them.
func newLineDTO(line *models.CartLine, quotes []pricing.StoreQuote) LineDTO {
	dto := LineDTO{
		ID:              line.ID,
		ProductID:       line.ProductID,
		Quantity:        line.Quantity,
		SelectedOfferID: line.SelectedOfferID,
		UnitPrice:       line.SelectedPrice,
		AvailableStores: quotes,
		CreatedAt:       line.CreatedAt,
	}
	if line.Product != nil {
		dto.ProductName = line.Product.Name
	}
	if line.SelectedOffer != nil {
		storeID := line.SelectedOffer.StoreID
		dto.SelectedStoreID = &storeID
		if line.SelectedOffer.Store != nil {
			dto.StoreName = line.SelectedOffer.Store.Username
		}
	}
	if line.SelectedPrice != nil {
		total := line.SelectedPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		dto.LineTotal = &total
	}
	return dto
}

// toResolvedLine maps a persisted line into the aggregation input.
func toResolvedLine(line *models.CartLine) pricing.ResolvedLine {
	resolved := pricing.ResolvedLine{Quantity: line.Quantity}
	if line.SelectedOffer != nil && line.SelectedPrice != nil {
		resolved.Resolved = true
		resolved.StoreID = line.SelectedOffer.StoreID
		resolved.UnitPrice = *line.SelectedPrice
		if line.SelectedOffer.Store != nil {
			resolved.StoreName = line.SelectedOffer.Store.Username
		}
	}
	return resolved
}
