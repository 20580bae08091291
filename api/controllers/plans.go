package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/geoshop/geoshop-backend/api/middleware"
	"github.com/geoshop/geoshop-backend/api/responses"
	"github.com/geoshop/geoshop-backend/api/validators"
	"github.com/geoshop/geoshop-backend/internal/plans"
	"github.com/geoshop/geoshop-backend/pkg/logger"
)

type subscribeRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
}

type paySubscriptionRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// PlanList returns the subscription plans on offer.
func PlanList(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListPlans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"plans": rows})
	}
}

// SubscriptionCreate opens a pending subscription for the store.
func SubscriptionCreate(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body subscribeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.CreateSubscription(r.Context(), middleware.MustUserID(r.Context()), body.PlanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sub)
	}
}

// SubscriptionList returns the store's subscription history.
func SubscriptionList(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListSubscriptions(r.Context(), middleware.MustUserID(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"subscriptions": rows})
	}
}

// SubscriptionPay confirms payment for a pending subscription and activates
// the plan on success.
func SubscriptionPay(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subscriptionID, err := validators.ParseUUIDParam(r, "subscriptionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body paySubscriptionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.ProcessPayment(r.Context(), middleware.MustUserID(r.Context()), plans.ProcessPaymentInput{
			SubscriptionID:  subscriptionID,
			PaymentMethodID: body.PaymentMethodID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sub)
	}
}
