package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/pkg/enums"
)

// Plan is a paid subscription tier limiting how many offers a store may list.
type Plan struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         enums.PlanName  `gorm:"column:name;type:plan_name;not null;uniqueIndex"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ProductLimit int             `gorm:"column:product_limit;not null"`
	Description  *string         `gorm:"column:description"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
