package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientCart groups a client's requested lines. A client has at most one
// incomplete cart at a time; the cart write path appends to it or creates one.
type ClientCart struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID    uuid.UUID  `gorm:"column:client_id;type:uuid;not null;index"`
	IsCompleted bool       `gorm:"column:is_completed;not null;default:false"`
	Lines       []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
