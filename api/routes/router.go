package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/geoshop/geoshop-backend/api/controllers"
	"github.com/geoshop/geoshop-backend/api/middleware"
	"github.com/geoshop/geoshop-backend/internal/cart"
	"github.com/geoshop/geoshop-backend/internal/catalog"
	"github.com/geoshop/geoshop-backend/internal/offers"
	"github.com/geoshop/geoshop-backend/internal/plans"
	"github.com/geoshop/geoshop-backend/internal/users"
	"github.com/geoshop/geoshop-backend/pkg/auth/session"
	"github.com/geoshop/geoshop-backend/pkg/config"
	"github.com/geoshop/geoshop-backend/pkg/db"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	"github.com/geoshop/geoshop-backend/pkg/logger"
	"github.com/geoshop/geoshop-backend/pkg/metrics"
	"github.com/geoshop/geoshop-backend/pkg/redis"
)

// Dependencies carries everything the HTTP surface needs.
type Dependencies struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Sessions        session.AccessSessionChecker
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsRegistry *prometheus.Registry

	Users   users.Service
	Catalog catalog.Service
	Offers  offers.Service
	Cart    cart.Service
	Plans   plans.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	passthrough := func(next http.Handler) http.Handler { return next }
	loginLimit := passthrough
	registerLimit := passthrough
	if deps.Redis != nil {
		loginLimit = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginUsernameLimit,
		), deps.Redis, logg)
		registerLimit = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"register",
			cfg.AuthRateLimit.RegisterWindow,
			cfg.AuthRateLimit.RegisterIPLimit,
			cfg.AuthRateLimit.RegisterUsernameLimit,
		), deps.Redis, logg)
	}

	var redisP redis.Pinger
	if deps.Redis != nil {
		redisP = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisP))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsRegistry))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(registerLimit).Post("/register", controllers.AuthRegister(deps.Users, logg))
		r.With(loginLimit).Post("/login", controllers.AuthLogin(deps.Users, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Users, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Users, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", controllers.UserProfile(deps.Users, logg))
			r.Patch("/me", controllers.UserUpdateProfile(deps.Users, logg))
			r.Delete("/{userId}", controllers.UserDelete(deps.Users, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(deps.Catalog, logg))
			r.Get("/{itemId}", controllers.CatalogGet(deps.Catalog, logg))
		})

		r.Get("/products/{productId}/stores", controllers.ProductAvailableStores(deps.Offers, logg))
		r.Get("/plans", controllers.PlanList(deps.Plans, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
			r.Get("/users", controllers.UserList(deps.Users, logg))
			r.Get("/offers", controllers.AdminOfferList(deps.Offers, logg))
			r.Get("/stores/{storeId}/offers", controllers.AdminStoreOffers(deps.Offers, logg))
			r.Route("/catalog", func(r chi.Router) {
				r.Post("/", controllers.AdminCatalogCreate(deps.Catalog, logg))
				r.Patch("/{itemId}", controllers.AdminCatalogUpdate(deps.Catalog, logg))
				r.Delete("/{itemId}", controllers.AdminCatalogDelete(deps.Catalog, logg))
			})
		})

		r.Route("/store", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleStore), logg))
			r.Route("/offers", func(r chi.Router) {
				r.Get("/", controllers.StoreOfferList(deps.Offers, logg))
				r.Post("/", controllers.StoreOfferCreate(deps.Offers, logg))
				r.Patch("/{offerId}", controllers.StoreOfferUpdate(deps.Offers, logg))
				r.Delete("/{offerId}", controllers.StoreOfferDelete(deps.Offers, logg))
			})
			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", controllers.SubscriptionList(deps.Plans, logg))
				r.Post("/", controllers.SubscriptionCreate(deps.Plans, logg))
				r.Post("/{subscriptionId}/pay", controllers.SubscriptionPay(deps.Plans, logg))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleClient), logg))
			r.Get("/", controllers.CartList(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Patch("/items/{lineId}", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Get("/{cartId}", controllers.CartGet(deps.Cart, logg))
			r.Get("/{cartId}/best-store", controllers.CartBestStore(deps.Cart, logg))
			r.Post("/{cartId}/complete", controllers.CartComplete(deps.Cart, logg))
		})
	})

	return r
}
