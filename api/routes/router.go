package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/malonic/quotehub-backend/api/controllers"
	"github.com/malonic/quotehub-backend/api/middleware"
	"github.com/malonic/quotehub-backend/internal/auth"
	"github.com/malonic/quotehub-backend/internal/clients"
	"github.com/malonic/quotehub-backend/internal/quotations"
	"github.com/malonic/quotehub-backend/internal/users"
	"github.com/malonic/quotehub-backend/pkg/auth/session"
	"github.com/malonic/quotehub-backend/pkg/config"
	"github.com/malonic/quotehub-backend/pkg/enums"
	"github.com/malonic/quotehub-backend/pkg/logger"
	"github.com/malonic/quotehub-backend/pkg/metrics"
	"github.com/malonic/quotehub-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything NewRouter needs to wire the API surface.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionManager sessionManager
	AuthService    auth.Service
	ClientService  clients.Service
	QuoteService   quotations.Service
	UserService    users.Service
	Exporter       controllers.QuotationExporter
	RenderMetrics  *metrics.RenderMetrics
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

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
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	probes := map[string]controllers.Pinger{}
	if deps.DB != nil {
		probes["database"] = deps.DB
	}
	if deps.Redis != nil {
		probes["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, probes))
	})

	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := func(next http.Handler) http.Handler { return next }
	if deps.Redis != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimiter).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
			r.Post("/password", controllers.AuthChangePassword(deps.AuthService, logg))
		})
	})

	adminOnly := middleware.RequireRole(string(enums.UserRoleAdmin), logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientsList(deps.ClientService, logg))
			r.Post("/", controllers.ClientsCreate(deps.ClientService, logg))
			r.Get("/{id}", controllers.ClientsGet(deps.ClientService, logg))
			r.Patch("/{id}", controllers.ClientsUpdate(deps.ClientService, logg))
			r.With(adminOnly).Delete("/{id}", controllers.ClientsDelete(deps.ClientService, logg))
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", controllers.QuotationsList(deps.QuoteService, logg))
			r.Post("/", controllers.QuotationsCreate(deps.QuoteService, logg))
			r.Get("/{id}", controllers.QuotationsGet(deps.QuoteService, logg))
			r.Patch("/{id}", controllers.QuotationsUpdate(deps.QuoteService, logg))
			r.Post("/{id}/status", controllers.QuotationsChangeStatus(deps.QuoteService, logg))
			r.With(adminOnly).Delete("/{id}", controllers.QuotationsDelete(deps.QuoteService, logg))
			r.Get("/{id}/pdf", controllers.QuotationsDownloadPDF(deps.Exporter, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", controllers.UsersList(deps.UserService, logg))
			r.Post("/", controllers.UsersCreate(deps.UserService, logg))
			r.Get("/{id}", controllers.UsersGet(deps.UserService, logg))
			r.Patch("/{id}", controllers.UsersUpdate(deps.UserService, logg))
			r.Delete("/{id}", controllers.UsersDelete(deps.UserService, logg))
		})

		r.Route("/sketch", func(r chi.Router) {
			r.Post("/preview", controllers.SketchPreview(logg, deps.RenderMetrics))
			r.Post("/render", controllers.SketchRender(logg, deps.RenderMetrics))
		})
	})

	return r
}
