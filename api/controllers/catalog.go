package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/api/middleware"
	"github.com/geoshop/geoshop-backend/api/responses"
	"github.com/geoshop/geoshop-backend/api/validators"
	"github.com/geoshop/geoshop-backend/internal/catalog"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	"github.com/geoshop/geoshop-backend/pkg/logger"
)

type createItemRequest struct {
	Name        string          `json:"name" validate:"required"`
	PackageType string          `json:"package_type" validate:"required"`
	WeightUnit  string          `json:"weight_unit" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
}

type updateItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	PackageType *string          `json:"package_type,omitempty"`
	WeightUnit  *string          `json:"weight_unit,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

// CatalogList returns published catalog items, optionally filtered.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := catalog.ListFilters{
			Query: strings.TrimSpace(r.URL.Query().Get("q")),
		}
		if pkg := strings.TrimSpace(r.URL.Query().Get("package_type")); pkg != "" {
			filters.PackageType = &pkg
		}

		items, err := svc.ListItems(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// CatalogGet returns a single catalog item.
func CatalogGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminCatalogCreate publishes a new catalog item.
func AdminCatalogCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), middleware.MustUserID(r.Context()), catalog.CreateItemInput{
			Name:        body.Name,
			PackageType: enums.PackageType(body.PackageType),
			WeightUnit:  enums.WeightUnit(body.WeightUnit),
			Quantity:    body.Quantity,
			Description: body.Description,
			ImageURL:    body.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminCatalogUpdate applies a partial update to a catalog item.
func AdminCatalogUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateItemInput{
			Name:        body.Name,
			Quantity:    body.Quantity,
			Description: body.Description,
			ImageURL:    body.ImageURL,
		}
		if body.PackageType != nil {
			pkg := enums.PackageType(*body.PackageType)
			input.PackageType = &pkg
		}
		if body.WeightUnit != nil {
			unit := enums.WeightUnit(*body.WeightUnit)
			input.WeightUnit = &unit
		}

		item, err := svc.UpdateItem(r.Context(), itemID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminCatalogDelete removes a catalog item.
func AdminCatalogDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
