package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/geoshop/geoshop-backend/internal/cart"
	"github.com/geoshop/geoshop-backend/internal/catalog"
	"github.com/geoshop/geoshop-backend/internal/offers"
	"github.com/geoshop/geoshop-backend/internal/plans"
	"github.com/geoshop/geoshop-backend/internal/pricing"
	"github.com/geoshop/geoshop-backend/internal/users"
	pkgAuth "github.com/geoshop/geoshop-backend/pkg/auth"
	"github.com/geoshop/geoshop-backend/pkg/auth/session"
	"github.com/geoshop/geoshop-backend/pkg/config"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	"github.com/geoshop/geoshop-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubUsersService struct{}

func (stubUsersService) Register(ctx context.Context, input users.RegisterInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}

func (stubUsersService) Login(ctx context.Context, username, password string) (*users.AuthResult, error) {
	return &users.AuthResult{}, nil
}

func (stubUsersService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubUsersService) Refresh(ctx context.Context, userID uuid.UUID, accessID, refreshToken string) (*users.AuthResult, error) {
	return &users.AuthResult{}, nil
}

func (stubUsersService) GetProfile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUsersService) UpdateProfile(ctx context.Context, userID uuid.UUID, input users.UpdateProfileInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUsersService) ListUsers(ctx context.Context) ([]users.UserDTO, error) {
	return nil, nil
}

func (stubUsersService) DeleteUser(ctx context.Context, callerID, targetID uuid.UUID, callerRole enums.UserRole) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) CreateItem(ctx context.Context, adminID uuid.UUID, input catalog.CreateItemInput) (*catalog.ItemDTO, error) {
	return &catalog.ItemDTO{}, nil
}

func (stubCatalogService) UpdateItem(ctx context.Context, itemID uuid.UUID, input catalog.UpdateItemInput) (*catalog.ItemDTO, error) {
	return &catalog.ItemDTO{}, nil
}

func (stubCatalogService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return nil
}

func (stubCatalogService) GetItem(ctx context.Context, itemID uuid.UUID) (*catalog.ItemDTO, error) {
	return &catalog.ItemDTO{}, nil
}

func (stubCatalogService) ListItems(ctx context.Context, filters catalog.ListFilters) ([]catalog.ItemDTO, error) {
	return nil, nil
}

type stubOffersService struct{}

func (stubOffersService) CreateOffer(ctx context.Context, storeID uuid.UUID, input offers.CreateOfferInput) (*offers.OfferDTO, error) {
	return &offers.OfferDTO{}, nil
}

func (stubOffersService) UpdateOffer(ctx context.Context, storeID, offerID uuid.UUID, input offers.UpdateOfferInput) (*offers.OfferDTO, error) {
	return &offers.OfferDTO{}, nil
}

func (stubOffersService) DeleteOffer(ctx context.Context, storeID, offerID uuid.UUID) error {
	return nil
}

func (stubOffersService) GetOffer(ctx context.Context, offerID uuid.UUID) (*offers.OfferDTO, error) {
	return &offers.OfferDTO{}, nil
}

func (stubOffersService) ListStoreOffers(ctx context.Context, storeID uuid.UUID) ([]offers.OfferDTO, error) {
	return nil, nil
}

func (stubOffersService) ListAllOffers(ctx context.Context) ([]offers.OfferDTO, error) {
	return nil, nil
}

func (stubOffersService) ListAvailableStores(ctx context.Context, productID uuid.UUID, quantity int) ([]pricing.StoreQuote, error) {
	return nil, nil
}

type stubCartService struct{}

func (stubCartService) AddItem(ctx context.Context, clientID uuid.UUID, input cart.AddItemInput) (*cart.LineDTO, error) {
	return &cart.LineDTO{}, nil
}

func (stubCartService) UpdateItemQuantity(ctx context.Context, clientID, lineID uuid.UUID, quantity int) (*cart.LineDTO, error) {
	return &cart.LineDTO{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, clientID, lineID uuid.UUID) error {
	return nil
}

func (stubCartService) GetCart(ctx context.Context, clientID, cartID uuid.UUID) (*cart.CartView, error) {
	return &cart.CartView{}, nil
}

func (stubCartService) ListCarts(ctx context.Context, clientID uuid.UUID) ([]cart.CartView, error) {
	return nil, nil
}

func (stubCartService) BestStore(ctx context.Context, clientID, cartID uuid.UUID) (*pricing.BestStoreResult, error) {
	return &pricing.BestStoreResult{}, nil
}

func (stubCartService) CompleteCart(ctx context.Context, clientID, cartID uuid.UUID) (*cart.CartView, error) {
	return &cart.CartView{}, nil
}

type stubPlansService struct{}

func (stubPlansService) ListPlans(ctx context.Context) ([]plans.PlanDTO, error) {
	return nil, nil
}

func (stubPlansService) CreateSubscription(ctx context.Context, storeID, planID uuid.UUID) (*plans.SubscriptionDTO, error) {
	return &plans.SubscriptionDTO{}, nil
}

func (stubPlansService) ListSubscriptions(ctx context.Context, storeID uuid.UUID) ([]plans.SubscriptionDTO, error) {
	return nil, nil
}

func (stubPlansService) ProcessPayment(ctx context.Context, storeID uuid.UUID, input plans.ProcessPaymentInput) (*plans.SubscriptionDTO, error) {
	return &plans.SubscriptionDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Dependencies{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Sessions: stubSessionChecker{},
		Users:    stubUsersService{},
		Catalog:  stubCatalogService{},
		Offers:   stubOffersService{},
		Cart:     stubCartService{},
		Plans:    stubPlansService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestStoreGroupRequiresStoreRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	client := httptest.NewRequest(http.MethodGet, "/api/v1/store/offers", nil)
	client.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, client)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client got %d", resp.Code)
	}

	store := httptest.NewRequest(http.MethodGet, "/api/v1/store/offers", nil)
	store.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStore))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, store)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for store got %d", resp.Code)
	}
}

func TestCartGroupRequiresClientRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	store := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	store.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStore))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, store)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for store got %d", resp.Code)
	}

	client := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	client.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleClient))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, client)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for client got %d", resp.Code)
	}
}

func TestAvailableStoresValidatesQuantity(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString()+"/stores?quantity=0", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity got %d", resp.Code)
	}
}
