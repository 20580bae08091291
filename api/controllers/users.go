package controllers

import (
	"net/http"

	"github.com/geoshop/geoshop-backend/api/middleware"
	"github.com/geoshop/geoshop-backend/api/responses"
	"github.com/geoshop/geoshop-backend/api/validators"
	"github.com/geoshop/geoshop-backend/internal/users"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	"github.com/geoshop/geoshop-backend/pkg/logger"
)

type updateProfileRequest struct {
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	CNPJ           *string  `json:"cnpj,omitempty"`
	Address        *string  `json:"address,omitempty"`
	Responsible    *string  `json:"responsible,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	HasLoyaltyCard *bool    `json:"has_loyalty_card,omitempty"`
}

// UserProfile returns the authenticated account.
func UserProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto, err := svc.GetProfile(r.Context(), middleware.MustUserID(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UserUpdateProfile applies a partial update to the authenticated account.
func UserUpdateProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateProfile(r.Context(), middleware.MustUserID(r.Context()), users.UpdateProfileInput{
			Email:          body.Email,
			CNPJ:           body.CNPJ,
			Address:        body.Address,
			Responsible:    body.Responsible,
			Latitude:       body.Latitude,
			Longitude:      body.Longitude,
			HasLoyaltyCard: body.HasLoyaltyCard,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UserList returns every account. Route-guarded to admins.
func UserList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"users": rows})
	}
}

// UserDelete removes an account; admins may delete anyone, others only themselves.
func UserDelete(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		callerID := middleware.MustUserID(r.Context())
		callerRole := enums.UserRole(middleware.RoleFromContext(r.Context()))

		if err := svc.DeleteUser(r.Context(), callerID, targetID, callerRole); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
