package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/geoshop/geoshop-backend/pkg/enums"
)

// User is the single account table shared by admins, clients, and stores.
// Stores carry the CNPJ/location columns; clients may carry a loyalty card.
type User struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username       string         `gorm:"column:username;not null;uniqueIndex"`
	Email          string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash   string         `gorm:"column:password_hash;not null"`
	Role           enums.UserRole `gorm:"column:role;type:user_role;not null;default:'client'"`
	CNPJ           *string        `gorm:"column:cnpj"`
	Address        *string        `gorm:"column:address"`
	Responsible    *string        `gorm:"column:responsible"`
	Latitude       *float64       `gorm:"column:latitude"`
	Longitude      *float64       `gorm:"column:longitude"`
	HasLoyaltyCard bool           `gorm:"column:has_loyalty_card;not null;default:false"`
	ActivePlanID   *uuid.UUID     `gorm:"column:active_plan_id;type:uuid"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
