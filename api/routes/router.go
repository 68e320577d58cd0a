package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/habistudio/habi-backend/api/controllers"
	"github.com/habistudio/habi-backend/api/middleware"
	"github.com/habistudio/habi-backend/internal/auth"
	"github.com/habistudio/habi-backend/internal/cart"
	"github.com/habistudio/habi-backend/internal/catalog"
	"github.com/habistudio/habi-backend/internal/feedback"
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/internal/orders"
	"github.com/habistudio/habi-backend/internal/state"
	"github.com/habistudio/habi-backend/pkg/auth/session"
	"github.com/habistudio/habi-backend/pkg/config"
	"github.com/habistudio/habi-backend/pkg/enums"
	"github.com/habistudio/habi-backend/pkg/logger"
	"github.com/habistudio/habi-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Redis    *redis.Client
	Sessions *session.Manager
	Registry *prometheus.Registry
	Auth     *auth.Service
	Catalog  *catalog.Service
	Ledger   *inventory.Ledger
	Cart     *cart.Service
	Orders   *orders.Log
	Store    *state.Store
	State    *state.Manager
	Mailer   *feedback.Mailer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svcs Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, svcs.Redis))
	})

	if svcs.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(svcs.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, svcs.Redis, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, svcs.Redis, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, svcs.Sessions, logg)).Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, svcs.Redis, logg)).Post("/login", controllers.AdminAuthLogin(svcs.Auth, logg))
		r.Get("/remembered", controllers.AdminAuthRemembered(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, svcs.Sessions, logg))

		r.Get("/catalog", controllers.CatalogList(svcs.Catalog, svcs.Ledger, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Post("/checkout", controllers.CartCheckout(svcs.Cart, logg))
		})

		r.Post("/feedback", controllers.FeedbackSubmit(svcs.Mailer, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, svcs.Sessions, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin.String(), logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.AdminInventoryList(svcs.Ledger, logg))
			r.Put("/{product}", controllers.AdminInventorySetQuantity(svcs.Ledger, logg))
			r.Delete("/{product}", controllers.AdminInventoryRemove(svcs.Ledger, logg))
			r.Post("/{product}/restock", controllers.AdminInventoryRestock(svcs.Ledger, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(svcs.Orders, logg))
			r.Delete("/", controllers.AdminOrdersRemove(svcs.Orders, logg))
			r.Post("/{orderId}/complete", controllers.AdminOrderComplete(svcs.Orders, logg))
		})

		r.Route("/state", func(r chi.Router) {
			r.Post("/save", controllers.AdminStateSave(svcs.State, logg))
			r.Post("/load", controllers.AdminStateLoad(svcs.State, logg))
			r.Get("/snapshots", controllers.AdminStateSnapshots(svcs.Store, logg))
		})
	})

	return r
}
