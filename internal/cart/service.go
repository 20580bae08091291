package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/internal/pricing"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
	pkgerrors "github.com/geoshop/geoshop-backend/pkg/errors"
)

// Service exposes the client cart operations.
type Service interface {
	AddItem(ctx context.Context, clientID uuid.UUID, input AddItemInput) (*LineDTO, error)
	UpdateItemQuantity(ctx context.Context, clientID, lineID uuid.UUID, quantity int) (*LineDTO, error)
	RemoveItem(ctx context.Context, clientID, lineID uuid.UUID) error
	GetCart(ctx context.Context, clientID, cartID uuid.UUID) (*CartView, error)
	ListCarts(ctx context.Context, clientID uuid.UUID) ([]CartView, error)
	BestStore(ctx context.Context, clientID, cartID uuid.UUID) (*pricing.BestStoreResult, error)
	CompleteCart(ctx context.Context, clientID, cartID uuid.UUID) (*CartView, error)
}

// AddItemInput holds the validated payload to add an item to the open cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// offerSource feeds the selection engine with active offers per product.
type offerSource interface {
	ListActiveByProduct(ctx context.Context, productID uuid.UUID) ([]models.StoreOffer, error)
}

// catalogReader checks that the referenced product exists.
type catalogReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
}

type service struct {
	repo    CartRepository
	tx      txRunner
	offers  offerSource
	catalog catalogReader
}

// NewService constructs a cart service instance.
func NewService(repo CartRepository, tx txRunner, offers offerSource, catalog catalogReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if offers == nil {
		return nil, fmt.Errorf("offer source required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{repo: repo, tx: tx, offers: offers, catalog: catalog}, nil
}

// AddItem appends a line to the client's open cart, creating the cart when
// none exists, and snapshots the winning offer for the requested quantity.
func (s *service) AddItem(ctx context.Context, clientID uuid.UUID, input AddItemInput) (*LineDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if _, err := s.catalog.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load catalog item")
	}

	resolution, err := s.resolve(ctx, input.ProductID, input.Quantity)
	if err != nil {
		return nil, err
	}

	var created *models.CartLine
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cart, err := txRepo.FindOpenCartForUpdate(ctx, clientID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load open cart")
			}
			cart, err = txRepo.CreateCart(ctx, &models.ClientCart{ClientID: clientID})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create cart")
			}
		}

		line := &models.CartLine{
			CartID:          cart.ID,
			ProductID:       input.ProductID,
			Quantity:        input.Quantity,
			SelectedOfferID: resolution.OfferID,
			SelectedPrice:   resolution.UnitPrice,
		}
		created, err = txRepo.CreateLine(ctx, line)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart line")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}

	dto := newLineDTO(created, nil)
	return &dto, nil
}

// UpdateItemQuantity changes a line's quantity and re-resolves its offer
// snapshot at the new quantity.
func (s *service) UpdateItemQuantity(ctx context.Context, clientID, lineID uuid.UUID, quantity int) (*LineDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	line, err := s.loadOwnedLine(ctx, clientID, lineID)
	if err != nil {
		return nil, err
	}

	resolution, err := s.resolve(ctx, line.ProductID, quantity)
	if err != nil {
		return nil, err
	}

	line.Quantity = quantity
	line.SelectedOfferID = resolution.OfferID
	line.SelectedPrice = resolution.UnitPrice
	line.SelectedOffer = nil

	updated, err := s.repo.UpdateLine(ctx, line)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart line")
	}

	dto := newLineDTO(updated, nil)
	return &dto, nil
}

// RemoveItem deletes a line from the client's cart.
func (s *service) RemoveItem(ctx context.Context, clientID, lineID uuid.UUID) error {
	if _, err := s.loadOwnedLine(ctx, clientID, lineID); err != nil {
		return err
	}
	if err := s.repo.DeleteLine(ctx, lineID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart line")
	}
	return nil
}

// GetCart builds the full cart view: lines with per-line store quotes, the
// cart total, the unresolved line count, and the best fulfilling store.
func (s *service) GetCart(ctx context.Context, clientID, cartID uuid.UUID) (*CartView, error) {
	cart, err := s.loadOwnedCart(ctx, clientID, cartID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart, true)
}

// ListCarts returns the client's carts without per-line quotes.
func (s *service) ListCarts(ctx context.Context, clientID uuid.UUID) ([]CartView, error) {
	carts, err := s.repo.ListCarts(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list carts")
	}
	views := make([]CartView, 0, len(carts))
	for i := range carts {
		view, err := s.buildView(ctx, &carts[i], false)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// BestStore returns the cheapest single store able to fulfill the cart.
// When no line resolved to any store the result is a not-found error, the
// same way the cart view reports a nil best store.
func (s *service) BestStore(ctx context.Context, clientID, cartID uuid.UUID) (*pricing.BestStoreResult, error) {
	cart, err := s.loadOwnedCart(ctx, clientID, cartID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.ListLines(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart lines")
	}

	resolved := make([]pricing.ResolvedLine, 0, len(lines))
	for i := range lines {
		resolved = append(resolved, toResolvedLine(&lines[i]))
	}

	best := pricing.BestStoreForCart(resolved)
	if best == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no store found for the items in the cart")
	}
	return best, nil
}

// CompleteCart marks the cart as completed. A new open cart is created on the
// next add.
func (s *service) CompleteCart(ctx context.Context, clientID, cartID uuid.UUID) (*CartView, error) {
	cart, err := s.loadOwnedCart(ctx, clientID, cartID)
	if err != nil {
		return nil, err
	}
	if cart.IsCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is already completed")
	}

	cart.IsCompleted = true
	if _, err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart")
	}
	return s.buildView(ctx, cart, false)
}

func (s *service) resolve(ctx context.Context, productID uuid.UUID, quantity int) (pricing.Resolution, error) {
	offers, err := s.offers.ListActiveByProduct(ctx, productID)
	if err != nil {
		return pricing.Resolution{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list active offers")
	}
	return pricing.ResolveLine(quantity, offers), nil
}

func (s *service) buildView(ctx context.Context, cart *models.ClientCart, withQuotes bool) (*CartView, error) {
	lines, err := s.repo.ListLines(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart lines")
	}

	view := &CartView{
		ID:          cart.ID,
		ClientID:    cart.ClientID,
		IsCompleted: cart.IsCompleted,
		Items:       make([]LineDTO, 0, len(lines)),
		CreatedAt:   cart.CreatedAt,
	}

	resolved := make([]pricing.ResolvedLine, 0, len(lines))
	for i := range lines {
		line := &lines[i]

		var quotes []pricing.StoreQuote
		if withQuotes {
			offers, err := s.offers.ListActiveByProduct(ctx, line.ProductID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list active offers")
			}
			quotes = pricing.ListAvailableStores(line.Quantity, offers)
		}

		view.Items = append(view.Items, newLineDTO(line, quotes))
		resolved = append(resolved, toResolvedLine(line))
	}

	view.TotalPrice, view.UnresolvedCount = pricing.CartTotal(resolved)
	view.BestStore = pricing.BestStoreForCart(resolved)
	return view, nil
}

func (s *service) loadOwnedCart(ctx context.Context, clientID, cartID uuid.UUID) (*models.ClientCart, error) {
	cart, err := s.repo.FindCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}
	if cart.ClientID != clientID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cart belongs to another client")
	}
	return cart, nil
}

func (s *service) loadOwnedLine(ctx context.Context, clientID, lineID uuid.UUID) (*models.CartLine, error) {
	line, err := s.repo.FindLine(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart line")
	}
	if _, err := s.loadOwnedCart(ctx, clientID, line.CartID); err != nil {
		return nil, err
	}
	return line, nil
}
