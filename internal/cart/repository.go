package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/geoshop/geoshop-backend/internal/repo"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

// CartRepository defines persistence for client carts and their lines.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindCart(ctx context.Context, cartID uuid.UUID) (*models.ClientCart, error)
	FindOpenCartForUpdate(ctx context.Context, clientID uuid.UUID) (*models.ClientCart, error)
	CreateCart(ctx context.Context, cart *models.ClientCart) (*models.ClientCart, error)
	UpdateCart(ctx context.Context, cart *models.ClientCart) (*models.ClientCart, error)
	ListCarts(ctx context.Context, clientID uuid.UUID) ([]models.ClientCart, error)
	FindLine(ctx context.Context, lineID uuid.UUID) (*models.CartLine, error)
	CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	UpdateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	ListLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error)
}

// Repository persists carts through GORM.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	return &Repository{Base: repo.NewBase(tx)}
}

// FindCart loads a cart without lines.
func (r *Repository) FindCart(ctx context.Context, cartID uuid.UUID) (*models.ClientCart, error) {
	var cart models.ClientCart
	if err := r.DB(ctx).First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindOpenCartForUpdate loads the client's incomplete cart under a row lock
// so concurrent adds serialize on the same cart.
func (r *Repository) FindOpenCartForUpdate(ctx context.Context, clientID uuid.UUID) (*models.ClientCart, error) {
	var cart models.ClientCart
	err := r.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("client_id = ? AND is_completed = ?", clientID, false).
		First(&cart).
		Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart inserts a new cart row.
func (r *Repository) CreateCart(ctx context.Context, cart *models.ClientCart) (*models.ClientCart, error) {
	if err := r.DB(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateCart updates an existing cart row.
func (r *Repository) UpdateCart(ctx context.Context, cart *models.ClientCart) (*models.ClientCart, error) {
	if err := r.DB(ctx).Save(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// ListCarts returns the client's carts, newest first.
func (r *Repository) ListCarts(ctx context.Context, clientID uuid.UUID) ([]models.ClientCart, error) {
	var rows []models.ClientCart
	err := r.DB(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// FindLine loads a line with its parent cart for ownership checks.
func (r *Repository) FindLine(ctx context.Context, lineID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.DB(ctx).First(&line, "id = ?", lineID).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// CreateLine inserts a new cart line row.
func (r *Repository) CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if err := r.DB(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine updates an existing cart line row.
func (r *Repository) UpdateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if err := r.DB(ctx).Save(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine removes a cart line by ID.
func (r *Repository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", lineID).Delete(&models.CartLine{}).Error
}

// ListLines returns the cart's lines in insertion order with the data the
// aggregation path needs.
func (r *Repository) ListLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error) {
	var rows []models.CartLine
	err := r.DB(ctx).
		Preload("Product").
		Preload("SelectedOffer").
		Preload("SelectedOffer.Store").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}
