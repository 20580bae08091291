package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	pkgerrors "github.com/geoshop/geoshop-backend/pkg/errors"
	"github.com/geoshop/geoshop-backend/pkg/logger"
)

// Service exposes plan listing, subscription creation, and payment processing.
type Service interface {
	ListPlans(ctx context.Context) ([]PlanDTO, error)
	CreateSubscription(ctx context.Context, storeID, planID uuid.UUID) (*SubscriptionDTO, error)
	ListSubscriptions(ctx context.Context, storeID uuid.UUID) ([]SubscriptionDTO, error)
	ProcessPayment(ctx context.Context, storeID uuid.UUID, input ProcessPaymentInput) (*SubscriptionDTO, error)
}

// ProcessPaymentInput identifies the pending subscription and how to pay it.
type ProcessPaymentInput struct {
	SubscriptionID  uuid.UUID
	PaymentMethodID string
}

type service struct {
	repo     PlanRepository
	payments StripePaymentClient
	currency string
	logg     *logger.Logger
}

// NewService constructs a plans service instance.
func NewService(repo PlanRepository, payments StripePaymentClient, currency string, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plan repository required")
	}
	if payments == nil {
		return nil, fmt.Errorf("stripe payment client required")
	}
	if currency == "" {
		currency = "brl"
	}
	return &service{repo: repo, payments: payments, currency: currency, logg: logg}, nil
}

// ListPlans returns every plan, cheapest tier first.
func (s *service) ListPlans(ctx context.Context) ([]PlanDTO, error) {
	rows, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list plans")
	}
	return NewPlanDTOs(rows), nil
}

// CreateSubscription persists a pending, inactive subscription for the store.
func (s *service) CreateSubscription(ctx context.Context, storeID, planID uuid.UUID) (*SubscriptionDTO, error) {
	plan, err := s.repo.FindPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load plan")
	}

	sub := &models.StoreSubscription{
		StoreID:       storeID,
		PlanID:        plan.ID,
		IsActive:      false,
		PaymentStatus: enums.PaymentStatusPending,
	}
	created, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert subscription")
	}
	created.Plan = plan
	return NewSubscriptionDTO(created), nil
}

// ListSubscriptions returns the store's subscriptions, newest first.
func (s *service) ListSubscriptions(ctx context.Context, storeID uuid.UUID) ([]SubscriptionDTO, error) {
	rows, err := s.repo.ListSubscriptionsByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list subscriptions")
	}
	out := make([]SubscriptionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewSubscriptionDTO(&rows[i]))
	}
	return out, nil
}

// ProcessPayment charges the plan price through Stripe and activates the
// subscription on success. A failed charge marks the subscription failed and
// surfaces a validation error so the store can retry with another method.
func (s *service) ProcessPayment(ctx context.Context, storeID uuid.UUID, input ProcessPaymentInput) (*SubscriptionDTO, error) {
	if input.PaymentMethodID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment_method_id is required")
	}

	sub, err := s.repo.FindSubscription(ctx, input.SubscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load subscription")
	}
	if sub.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "subscription belongs to another store")
	}
	if sub.Plan == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "subscription has no plan loaded")
	}
	if sub.PaymentStatus == enums.PaymentStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "subscription is already paid")
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(priceToCents(sub.Plan)),
		Currency:      stripe.String(s.currency),
		PaymentMethod: stripe.String(input.PaymentMethodID),
		Confirm:       stripe.Bool(true),
	}
	params.AddMetadata("subscription_id", sub.ID.String())

	intent, err := s.payments.CreatePaymentIntent(ctx, params)
	if err != nil {
		s.markFailed(ctx, sub)
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "stripe: payment failed")
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		s.markFailed(ctx, sub)
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("payment not completed (status %s)", intent.Status))
	}

	sub.IsActive = true
	sub.PaymentStatus = enums.PaymentStatusCompleted
	sub.PaymentIntentID = &intent.ID
	updated, err := s.repo.UpdateSubscription(ctx, sub)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: activate subscription")
	}

	if err := s.repo.SetActivePlan(ctx, storeID, sub.PlanID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set active plan")
	}

	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("subscription %s activated for store %s", sub.ID, storeID))
	}
	return NewSubscriptionDTO(updated), nil
}

func (s *service) markFailed(ctx context.Context, sub *models.StoreSubscription) {
	sub.PaymentStatus = enums.PaymentStatusFailed
	if _, err := s.repo.UpdateSubscription(ctx, sub); err != nil && s.logg != nil {
		s.logg.Error(ctx, "marking subscription failed", err)
	}
}

// priceToCents converts the plan's decimal price to integer cents.
func priceToCents(plan *models.Plan) int64 {
	return plan.Price.Shift(2).Round(0).IntPart()
}
