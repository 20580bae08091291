package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/geoshop/geoshop-backend/pkg/enums"
)

// StoreSubscription ties a store to a plan. It stays inactive until the
// payment for the plan price completes.
type StoreSubscription struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	PlanID          uuid.UUID           `gorm:"column:plan_id;type:uuid;not null"`
	IsActive        bool                `gorm:"column:is_active;not null;default:false"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	PaymentIntentID *string             `gorm:"column:payment_intent_id"`
	Plan            *Plan               `gorm:"foreignKey:PlanID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
