package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portailgestion/portail-admin/internal/httputil"
	"github.com/portailgestion/portail-admin/pkg/auth"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

// Handler handles login and logout.
type Handler struct {
	logger       *slog.Logger
	accounts     *auth.AccountService
	tokens       *auth.TokenService
	cookieConfig httputil.CookieConfig
}

// NewHandler creates a new session handler.
func NewHandler(logger *slog.Logger, accounts *auth.AccountService, tokens *auth.TokenService, cookieConfig httputil.CookieConfig) *Handler {
	return &Handler{
		logger:       logger,
		accounts:     accounts,
		tokens:       tokens,
		cookieConfig: cookieConfig,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates by email and password and issues a session token.
// POST /login/
//
// The token is returned in the body and set as an HttpOnly cookie for
// browser clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("authentication failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err, "user_id", user.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	httputil.SetTokenCookie(w, token, h.tokens.TTL(), h.cookieConfig)
	httputil.JSON(w, http.StatusOK, map[string]string{"jwt": token})
}

// Logout clears the session cookie. It is idempotent and never fails; the
// token itself stays valid until its natural expiry.
// POST /logout/
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	httputil.ClearTokenCookie(w, h.cookieConfig)
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "success"})
}
