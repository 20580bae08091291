package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one requested (item, quantity) pair with the resolved winning
// offer snapshot. SelectedOfferID/SelectedPrice are nil when no active offer
// exists for the item; they are rewritten on every create or quantity update,
// never set by clients.
type CartLine struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID          uuid.UUID        `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID       uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	Quantity        int              `gorm:"column:quantity;not null"`
	SelectedOfferID *uuid.UUID       `gorm:"column:selected_offer_id;type:uuid"`
	SelectedPrice   *decimal.Decimal `gorm:"column:selected_price;type:numeric(10,2)"`
	Product         *CatalogItem     `gorm:"foreignKey:ProductID"`
	SelectedOffer   *StoreOffer      `gorm:"foreignKey:SelectedOfferID"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
