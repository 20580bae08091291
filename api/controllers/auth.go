package controllers

import (
	"net/http"

	"github.com/geoshop/geoshop-backend/api/middleware"
	"github.com/geoshop/geoshop-backend/api/responses"
	"github.com/geoshop/geoshop-backend/api/validators"
	"github.com/geoshop/geoshop-backend/internal/users"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	pkgerrors "github.com/geoshop/geoshop-backend/pkg/errors"
	"github.com/geoshop/geoshop-backend/pkg/logger"
)

type registerRequest struct {
	Role           string   `json:"role" validate:"required,oneof=client store"`
	Username       string   `json:"username" validate:"required,min=3,max=64"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8"`
	CNPJ           *string  `json:"cnpj,omitempty"`
	Address        *string  `json:"address,omitempty"`
	Responsible    *string  `json:"responsible,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	HasLoyaltyCard bool     `json:"has_loyalty_card,omitempty"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthRegister onboards a new client or store account and logs it in.
func AuthRegister(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		if _, err := svc.Register(r.Context(), users.RegisterInput{
			Role:           role,
			Username:       body.Username,
			Email:          body.Email,
			Password:       body.Password,
			CNPJ:           body.CNPJ,
			Address:        body.Address,
			Responsible:    body.Responsible,
			Latitude:       body.Latitude,
			Longitude:      body.Longitude,
			HasLoyaltyCard: body.HasLoyaltyCard,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthLogin exchanges username/password for a token pair.
func AuthLogin(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the caller's server-side session.
func AuthLogout(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessID := middleware.SessionIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthRefresh rotates the caller's session and mints a new token pair.
func AuthRefresh(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body refreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.MustUserID(r.Context())
		accessID := middleware.SessionIDFromContext(r.Context())

		result, err := svc.Refresh(r.Context(), userID, accessID, body.RefreshToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
