// Package admin provides an embeddable user administration backend with
// token authentication.
//
// Setup:
//
//  1. Run migrations from migrations/ folder using your preferred tool
//  2. Create an Admin instance and mount its routes
//
// Basic usage:
//
//	db, _ := sql.Open("postgres", "postgres://localhost/myapp?sslmode=disable")
//
//	backend, err := admin.New(admin.Config{
//	    DB:        db,
//	    JWTSecret: "your-secret-key-at-least-32-chars",
//	})
//	if err != nil {
//	    log.Fatal(err) // Will fail if migrations haven't been run
//	}
//
//	r := chi.NewRouter()
//	r.Mount("/api", backend.Router())
//	http.ListenAndServe(":8080", r)
package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/portailgestion/portail-admin/internal/config"
	httpserver "github.com/portailgestion/portail-admin/internal/http"
	"github.com/portailgestion/portail-admin/internal/http/middleware"
	"github.com/portailgestion/portail-admin/internal/httputil"
	"github.com/portailgestion/portail-admin/pkg/auth"
	"github.com/portailgestion/portail-admin/pkg/domain"
	"github.com/portailgestion/portail-admin/pkg/repository"
)

// Config holds the configuration for the admin backend.
type Config struct {
	// DB is the database connection (required).
	DB *sql.DB

	// JWTSecret is the secret key for signing session tokens (required, min 32 chars).
	JWTSecret string

	// JWTIssuer is the issuer claim in session tokens (default: "portail-admin").
	JWTIssuer string

	// TokenTTL is the lifetime of session tokens (default: 60 minutes).
	TokenTTL time.Duration

	// CookieSecure marks the session cookie Secure (default: false).
	CookieSecure bool

	// RateLimit configures login throttling (default: disabled).
	RateLimit config.RateLimitConfig

	// Logger is the structured logger (default: slog JSON to stdout).
	Logger *slog.Logger
}

// Admin is the main backend instance.
type Admin struct {
	config        Config
	db            *sql.DB
	usersRepo     *repository.UsersRepository
	profilesRepo  *repository.ProfilesRepository
	customersRepo *repository.CustomersRepository
	accounts      *auth.AccountService
	tokens        *auth.TokenService
}

// New creates a new Admin instance with the given configuration.
// Returns an error if required database tables don't exist.
// Run migrations first - see migrations/ folder for SQL files.
func New(cfg Config) (*Admin, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validateSchema(cfg.DB); err != nil {
		return nil, err
	}

	usersRepo := repository.NewUsersRepository(cfg.DB)
	profilesRepo := repository.NewProfilesRepository(cfg.DB)
	customersRepo := repository.NewCustomersRepository(cfg.DB)

	accounts := auth.NewAccountService(usersRepo, profilesRepo, customersRepo)
	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})

	return &Admin{
		config:        cfg,
		db:            cfg.DB,
		usersRepo:     usersRepo,
		profilesRepo:  profilesRepo,
		customersRepo: customersRepo,
		accounts:      accounts,
		tokens:        tokens,
	}, nil
}

// Router returns an http.Handler with all routes registered.
// Mount this on your main router:
//
//	r := chi.NewRouter()
//	r.Mount("/api", backend.Router())
//
// Routes:
//
//	POST /create/   - Register a user (protected)
//	POST /login/    - Login with email/password
//	POST /get/      - Get the authenticated user (protected)
//	POST /getall/   - List all users (protected)
//	POST /logout/   - Logout (clears the session cookie)
//	POST /update/   - Update a user by ID (protected)
//	POST /delete/   - Delete a user by ID (protected)
func (a *Admin) Router() http.Handler {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Logger:         a.config.Logger,
		AccountService: a.accounts,
		TokenService:   a.tokens,
		CookieSecure:   a.config.CookieSecure,
		RateLimit:      a.config.RateLimit,
	})
}

// Accounts returns the account service for advanced usage, such as
// seeding an initial user before any token exists.
func (a *Admin) Accounts() *auth.AccountService {
	return a.accounts
}

// Profiles returns the profile store.
func (a *Admin) Profiles() *repository.ProfilesRepository {
	return a.profilesRepo
}

// Customers returns the customer store.
func (a *Admin) Customers() *repository.CustomersRepository {
	return a.customersRepo
}

// AuthMiddleware returns middleware that validates session tokens.
// Use this to protect your own routes:
//
//	r.Group(func(r chi.Router) {
//	    r.Use(backend.AuthMiddleware())
//	    r.Get("/protected", handler)
//	})
func (a *Admin) AuthMiddleware() func(http.Handler) http.Handler {
	return middleware.Auth(a.tokens)
}

// GetUserID extracts the authenticated user ID from a request.
// Use after AuthMiddleware.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return middleware.GetUserID(r.Context())
}

// GetUserIDFromContext extracts the authenticated user ID from a context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return middleware.GetUserID(ctx)
}

// GetUser retrieves the authenticated user from the database.
// Use after AuthMiddleware.
func (a *Admin) GetUser(r *http.Request) (*domain.User, error) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		return nil, errors.New("admin: user not authenticated")
	}
	return a.usersRepo.GetByID(r.Context(), id)
}

// HealthHandler returns a simple health check handler.
func (a *Admin) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Routes registers all routes on an http.ServeMux under the given prefix:
//
//	mux := http.NewServeMux()
//	backend.Routes(mux, "/api/v1")
func (a *Admin) Routes(mux *http.ServeMux, prefix string) {
	mux.Handle(prefix+"/", http.StripPrefix(prefix, a.Router()))
}

func validateConfig(cfg *Config) error {
	if cfg.DB == nil {
		return errors.New("admin: DB is required")
	}
	if cfg.JWTSecret == "" {
		return errors.New("admin: JWTSecret is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return errors.New("admin: JWTSecret must be at least 32 characters")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "portail-admin"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = auth.DefaultTokenTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
}

// validateSchema checks that required database tables exist.
func validateSchema(db *sql.DB) error {
	requiredTables := []string{"users", "profiles", "customers", "user_code_counters"}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1
	`

	for _, table := range requiredTables {
		var name string
		err := db.QueryRow(query, table).Scan(&name)
		if err == sql.ErrNoRows {
			return fmt.Errorf("admin: missing table '%s' - run migrations first (see migrations/ folder)", table)
		}
		if err != nil {
			return fmt.Errorf("admin: failed to check schema: %w", err)
		}
	}

	return nil
}
