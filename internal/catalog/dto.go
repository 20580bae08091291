package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
	"github.com/geoshop/geoshop-backend/pkg/enums"
)

// ItemDTO is the API shape of a catalog item.
type ItemDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	PackageType enums.PackageType `json:"package_type"`
	WeightUnit  enums.WeightUnit  `json:"weight_unit"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Description *string           `json:"description,omitempty"`
	ImageURL    *string           `json:"image_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewItemDTO maps the model into the API shape.
func NewItemDTO(item *models.CatalogItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		PackageType: item.PackageType,
		WeightUnit:  item.WeightUnit,
		Quantity:    item.Quantity,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// NewItemDTOs maps a slice of models.
func NewItemDTOs(items []models.CatalogItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *NewItemDTO(&items[i]))
	}
	return out
}
