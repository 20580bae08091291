package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
	"github.com/geoshop/geoshop-backend/pkg/enums"
)

// UserDTO is the API shape of an account. The password hash never leaves the
// service layer.
type UserDTO struct {
	ID             uuid.UUID      `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	Role           enums.UserRole `json:"role"`
	CNPJ           *string        `json:"cnpj,omitempty"`
	Address        *string        `json:"address,omitempty"`
	Responsible    *string        `json:"responsible,omitempty"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	HasLoyaltyCard bool           `json:"has_loyalty_card"`
	ActivePlanID   *uuid.UUID     `json:"active_plan_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// AuthResult carries the tokens returned by login and refresh.
type AuthResult struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

// NewUserDTO maps the model into the API shape.
func NewUserDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		CNPJ:           user.CNPJ,
		Address:        user.Address,
		Responsible:    user.Responsible,
		Latitude:       user.Latitude,
		Longitude:      user.Longitude,
		HasLoyaltyCard: user.HasLoyaltyCard,
		ActivePlanID:   user.ActivePlanID,
		CreatedAt:      user.CreatedAt,
	}
}

// NewUserDTOs maps a slice of models.
func NewUserDTOs(rows []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewUserDTO(&rows[i]))
	}
	return out
}
