package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/portailgestion/portail-admin/internal/config"
	"github.com/portailgestion/portail-admin/internal/http/features/session"
	"github.com/portailgestion/portail-admin/internal/http/features/users"
	"github.com/portailgestion/portail-admin/internal/http/middleware"
	"github.com/portailgestion/portail-admin/internal/httputil"
	"github.com/portailgestion/portail-admin/pkg/auth"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger             *slog.Logger
	AccountService     *auth.AccountService
	TokenService       *auth.TokenService
	CookieSecure       bool
	MaxRequestBodySize int64
	RateLimit          config.RateLimitConfig
	SecurityHeaders    config.SecurityHeadersConfig
}

// NewRouter creates a new HTTP router with all routes registered.
//
// Every route is POST. Login and logout are open; registration and every
// account operation require a valid token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	if cfg.MaxRequestBodySize == 0 {
		cfg.MaxRequestBodySize = 1 << 20
	}

	// Apply global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.SecurityHeaders))
	r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBodySize))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	cookieConfig := httputil.DefaultCookieConfig()
	cookieConfig.Secure = cfg.CookieSecure

	sessionHandler := session.NewHandler(cfg.Logger, cfg.AccountService, cfg.TokenService, cookieConfig)
	usersHandler := users.NewHandler(cfg.Logger, cfg.AccountService)

	loginLimiter := middleware.LoginRateLimiter(cfg.RateLimit, cfg.Logger)
	r.With(loginLimiter).Post("/login/", sessionHandler.Login)
	r.Post("/logout/", sessionHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenService))
		r.Post("/create/", usersHandler.Create)
		r.Post("/get/", usersHandler.Get)
		r.Post("/getall/", usersHandler.GetAll)
		r.Post("/update/", usersHandler.Update)
		r.Post("/delete/", usersHandler.Delete)
	})

	return r
}
