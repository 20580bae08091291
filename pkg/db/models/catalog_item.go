package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/pkg/enums"
)

// CatalogItem is the admin-published generic product definition stores list against.
type CatalogItem struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AdminID     uuid.UUID         `gorm:"column:admin_id;type:uuid;not null"`
	Name        string            `gorm:"column:name;not null"`
	PackageType enums.PackageType `gorm:"column:package_type;type:package_type;not null"`
	WeightUnit  enums.WeightUnit  `gorm:"column:weight_unit;type:weight_unit;not null"`
	Quantity    decimal.Decimal   `gorm:"column:quantity;type:numeric(10,2);not null"`
	Description *string           `gorm:"column:description"`
	ImageURL    *string           `gorm:"column:image_url"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
