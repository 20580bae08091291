package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/api/middleware"
	"github.com/geoshop/geoshop-backend/api/responses"
	"github.com/geoshop/geoshop-backend/api/validators"
	"github.com/geoshop/geoshop-backend/internal/offers"
	"github.com/geoshop/geoshop-backend/pkg/logger"
	"github.com/geoshop/geoshop-backend/pkg/types"

	"github.com/google/uuid"
)

type createOfferRequest struct {
	ProductID       uuid.UUID        `json:"product_id" validate:"required"`
	Price           decimal.Decimal  `json:"price" validate:"required"`
	BulkPrice       *decimal.Decimal `json:"bulk_price,omitempty"`
	BulkMinQuantity *int             `json:"bulk_min_quantity,omitempty"`
	LoyaltyPrice    *decimal.Decimal `json:"loyalty_price,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// updateOfferRequest distinguishes absent fields from explicit nulls so a
// store can clear bulk or loyalty pricing by sending null.
type updateOfferRequest struct {
	Price           *decimal.Decimal      `json:"price,omitempty"`
	BulkPrice       types.NullableDecimal `json:"bulk_price,omitempty"`
	BulkMinQuantity *int                  `json:"bulk_min_quantity,omitempty"`
	LoyaltyPrice    types.NullableDecimal `json:"loyalty_price,omitempty"`
	IsActive        *bool                 `json:"is_active,omitempty"`
}

func (b updateOfferRequest) toInput() offers.UpdateOfferInput {
	input := offers.UpdateOfferInput{
		Price:           b.Price,
		BulkMinQuantity: b.BulkMinQuantity,
		IsActive:        b.IsActive,
	}
	if b.BulkPrice.Valid {
		if b.BulkPrice.Value == nil {
			input.ClearBulk = true
		} else {
			input.BulkPrice = b.BulkPrice.Value
		}
	}
	if b.LoyaltyPrice.Valid {
		if b.LoyaltyPrice.Value == nil {
			input.ClearLoyalty = true
		} else {
			input.LoyaltyPrice = b.LoyaltyPrice.Value
		}
	}
	return input
}

// StoreOfferCreate lists a priced offer for the authenticated store.
func StoreOfferCreate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createOfferRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.CreateOffer(r.Context(), middleware.MustUserID(r.Context()), offers.CreateOfferInput{
			ProductID:       body.ProductID,
			Price:           body.Price,
			BulkPrice:       body.BulkPrice,
			BulkMinQuantity: body.BulkMinQuantity,
			LoyaltyPrice:    body.LoyaltyPrice,
			IsActive:        body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, offer)
	}
}

// StoreOfferUpdate applies a partial update to one of the store's offers.
func StoreOfferUpdate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOfferRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.UpdateOffer(r.Context(), middleware.MustUserID(r.Context()), offerID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, offer)
	}
}

// StoreOfferDelete delists one of the store's offers.
func StoreOfferDelete(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOffer(r.Context(), middleware.MustUserID(r.Context()), offerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// StoreOfferList returns the authenticated store's offers.
func StoreOfferList(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListStoreOffers(r.Context(), middleware.MustUserID(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"offers": rows})
	}
}

// AdminOfferList returns every offer across stores.
func AdminOfferList(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListAllOffers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"offers": rows})
	}
}

// AdminStoreOffers returns the offers listed by a specific store.
func AdminStoreOffers(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseUUIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListStoreOffers(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"offers": rows})
	}
}

// ProductAvailableStores returns the stores offering a product, cheapest
// effective unit price first for the requested quantity.
func ProductAvailableStores(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotes, err := svc.ListAvailableStores(r.Context(), productID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"stores": quotes})
	}
}
