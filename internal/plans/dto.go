package plans

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
	"github.com/geoshop/geoshop-backend/pkg/enums"
)

// PlanDTO is the API shape of a subscription plan.
type PlanDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         enums.PlanName  `json:"name"`
	Price        decimal.Decimal `json:"price"`
	ProductLimit int             `json:"product_limit"`
	Description  *string         `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SubscriptionDTO is the API shape of a store subscription.
type SubscriptionDTO struct {
	ID            uuid.UUID           `json:"id"`
	StoreID       uuid.UUID           `json:"store_id"`
	Plan          *PlanDTO            `json:"plan,omitempty"`
	PlanID        uuid.UUID           `json:"plan_id"`
	IsActive      bool                `json:"is_active"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewPlanDTO maps the model into the API shape.
func NewPlanDTO(plan *models.Plan) *PlanDTO {
	if plan == nil {
		return nil
	}
	return &PlanDTO{
		ID:           plan.ID,
		Name:         plan.Name,
		Price:        plan.Price,
		ProductLimit: plan.ProductLimit,
		Description:  plan.Description,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}
}

// NewPlanDTOs maps a slice of models.
func NewPlanDTOs(rows []models.Plan) []PlanDTO {
	out := make([]PlanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewPlanDTO(&rows[i]))
	}
	return out
}

// NewSubscriptionDTO maps the model into the API shape.
func NewSubscriptionDTO(sub *models.StoreSubscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:            sub.ID,
		StoreID:       sub.StoreID,
		Plan:          NewPlanDTO(sub.Plan),
		PlanID:        sub.PlanID,
		IsActive:      sub.IsActive,
		PaymentStatus: sub.PaymentStatus,
		CreatedAt:     sub.CreatedAt,
		UpdatedAt:     sub.UpdatedAt,
	}
}
