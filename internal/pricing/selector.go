// Package pricing implements the offer selection and cart aggregation engine.
// Everything here is pure: callers supply a snapshot of active offers (or
// resolved lines) and get a decision back. No I/O, no locks.
package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

// EffectiveUnitPrice returns the unit price a store would actually charge for
// the requested quantity: the bulk price when a bulk threshold exists and the
// quantity meets it, the base price otherwise. Loyalty pricing is carried in
// the data but deliberately not consulted here.
func EffectiveUnitPrice(offer models.StoreOffer, quantity int) decimal.Decimal {
	if offer.BulkPrice != nil && offer.BulkMinQuantity != nil && quantity >= *offer.BulkMinQuantity {
		return *offer.BulkPrice
	}
	return offer.Price
}

// SelectBestOffer picks the offer with the strictly lowest effective price for
// the requested quantity. Ties keep the first-encountered offer: the input
// slice is loaded in insertion order from the backing store, so the earliest
// listed store wins. An empty offer set yields (nil, nil); the item is simply
// unavailable, not an error.
//
// Callers must pass quantity > 0 and only active offers; validation happens
// upstream.
func SelectBestOffer(quantity int, offers []models.StoreOffer) (*models.StoreOffer, *decimal.Decimal) {
	var best *models.StoreOffer
	var bestPrice *decimal.Decimal

	for i := range offers {
		price := EffectiveUnitPrice(offers[i], quantity)
		if bestPrice == nil || price.LessThan(*bestPrice) {
			best = &offers[i]
			bestPrice = &price
		}
	}

	return best, bestPrice
}

// Resolution is the snapshot written onto a cart line after selection.
type Resolution struct {
	OfferID   *uuid.UUID
	StoreID   *uuid.UUID
	UnitPrice *decimal.Decimal
}

// Resolved reports whether any offer won the selection.
func (r Resolution) Resolved() bool {
	return r.OfferID != nil && r.UnitPrice != nil
}

// ResolveLine computes the winning offer snapshot for a cart line. The cart
// write path calls this on every line create or quantity update; the result is
// persisted, not recomputed on read, so later offer changes leave the line
// stale until it is rewritten.
func ResolveLine(quantity int, activeOffers []models.StoreOffer) Resolution {
	offer, price := SelectBestOffer(quantity, activeOffers)
	if offer == nil {
		return Resolution{}
	}
	offerID := offer.ID
	storeID := offer.StoreID
	return Resolution{
		OfferID:   &offerID,
		StoreID:   &storeID,
		UnitPrice: price,
	}
}

// StoreQuote is one row of the price-comparison display for a single item.
type StoreQuote struct {
	StoreID         uuid.UUID        `json:"store_id"`
	StoreName       string           `json:"store_name"`
	Price           decimal.Decimal  `json:"price"`
	BulkPrice       *decimal.Decimal `json:"bulk_price"`
	BulkMinQuantity *int             `json:"bulk_min_quantity"`
	LoyaltyPrice    *decimal.Decimal `json:"loyalty_price"`
	FinalPrice      decimal.Decimal  `json:"final_price"`
}

// ListAvailableStores quotes every supplied offer at the requested quantity,
// sorted ascending by effective price. The sort is stable, so equal-priced
// stores keep their insertion order and the head of the list always matches
// SelectBestOffer over the same set.
func ListAvailableStores(quantity int, offers []models.StoreOffer) []StoreQuote {
	quotes := make([]StoreQuote, 0, len(offers))
	for i := range offers {
		offer := offers[i]
		quote := StoreQuote{
			StoreID:         offer.StoreID,
			Price:           offer.Price,
			BulkPrice:       offer.BulkPrice,
			BulkMinQuantity: offer.BulkMinQuantity,
			LoyaltyPrice:    offer.LoyaltyPrice,
			FinalPrice:      EffectiveUnitPrice(offer, quantity),
		}
		if offer.Store != nil {
			quote.StoreName = offer.Store.Username
		}
		quotes = append(quotes, quote)
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].FinalPrice.LessThan(quotes[j].FinalPrice)
	})

	return quotes
}
