package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoreOffer is a store's priced listing against a catalog item.
// Invariant enforced on write: BulkPrice set implies BulkMinQuantity set.
type StoreOffer struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID        `gorm:"column:store_id;type:uuid;not null;index"`
	ProductID       uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	BulkPrice       *decimal.Decimal `gorm:"column:bulk_price;type:numeric(10,2)"`
	BulkMinQuantity *int             `gorm:"column:bulk_min_quantity"`
	LoyaltyPrice    *decimal.Decimal `gorm:"column:loyalty_price;type:numeric(10,2)"`
	IsActive        bool             `gorm:"column:is_active;not null;default:true"`
	Store           *User            `gorm:"foreignKey:StoreID"`
	Product         *CatalogItem     `gorm:"foreignKey:ProductID"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
