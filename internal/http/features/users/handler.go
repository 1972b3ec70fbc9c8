package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/portailgestion/portail-admin/internal/http/middleware"
	"github.com/portailgestion/portail-admin/internal/httputil"
	"github.com/portailgestion/portail-admin/pkg/auth"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

// Handler handles user account endpoints.
type Handler struct {
	logger   *slog.Logger
	accounts *auth.AccountService
}

// NewHandler creates a new users handler.
func NewHandler(logger *slog.Logger, accounts *auth.AccountService) *Handler {
	return &Handler{
		logger:   logger,
		accounts: accounts,
	}
}

// CreateRequest represents a registration request.
type CreateRequest struct {
	Email         string          `json:"email"`
	Password      string          `json:"password"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Phone         string          `json:"phone"`
	Status        domain.Status   `json:"status"`
	Language      domain.Language `json:"language"`
	StartValidity *time.Time      `json:"start_validity"`
	EndValidity   *time.Time      `json:"end_validity"`
	ProfileID     *uuid.UUID      `json:"profile"`
	CustomerID    *uuid.UUID      `json:"customer"`
}

// UpdateRequest represents an update request. The target user is named by
// ID in the body; only name, phone, and password are mutable.
type UpdateRequest struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password"`
}

// DeleteRequest represents a delete request.
type DeleteRequest struct {
	ID string `json:"id"`
}

// UserResponse is the public representation of a user. The password hash is
// never included.
type UserResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Email         string          `json:"email"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Phone         string          `json:"phone"`
	Status        domain.Status   `json:"status"`
	Attempts      int             `json:"attempts"`
	Language      domain.Language `json:"language"`
	StartValidity *time.Time      `json:"start_validity"`
	EndValidity   *time.Time      `json:"end_validity"`
	ProfileID     *uuid.UUID      `json:"profile"`
	CustomerID    *uuid.UUID      `json:"customer"`
}

func toResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Code:          user.Code,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Phone:         user.Phone,
		Status:        user.Status,
		Attempts:      user.Attempts,
		Language:      user.Language,
		StartValidity: user.StartValidity,
		EndValidity:   user.EndValidity,
		ProfileID:     user.ProfileID,
		CustomerID:    user.CustomerID,
	}
}

// Create registers a new user.
// POST /create/
//
// The route itself is gated on a valid token from a previous login.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.accounts.Register(r.Context(), auth.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Status:        req.Status,
		Language:      req.Language,
		StartValidity: req.StartValidity,
		EndValidity:   req.EndValidity,
		ProfileID:     req.ProfileID,
		CustomerID:    req.CustomerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailRequired),
			errors.Is(err, domain.ErrPasswordRequired),
			errors.Is(err, domain.ErrInvalidEmail),
			errors.Is(err, domain.ErrInvalidStatus),
			errors.Is(err, domain.ErrInvalidLanguage),
			errors.Is(err, domain.ErrEmailTaken),
			errors.Is(err, domain.ErrCodeTaken),
			errors.Is(err, domain.ErrProfileNotFound),
			errors.Is(err, domain.ErrCustomerNotFound):
			httputil.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("registration failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(user))
}

// Get returns the calling user's own record, identified by the token.
// POST /get/
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	user, err := h.accounts.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to get user", "error", err, "user_id", userID)
		httputil.Error(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(user))
}

// GetAll returns every user. The listing is unbounded.
// POST /getall/
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toResponse(user))
	}
	httputil.JSON(w, http.StatusOK, responses)
}

// Update mutates the user named by ID in the request body. Any
// authenticated caller may update any user.
// POST /update/
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID == "" {
		httputil.Error(w, http.StatusNotFound, "user id not provided")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "user not found")
		return
	}

	user, err := h.accounts.Update(r.Context(), id, auth.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to update user", "error", err, "user_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(user))
}

// Delete hard-deletes the user named by ID in the request body.
// POST /delete/
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID == "" {
		httputil.Error(w, http.StatusNotFound, "user id not provided")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to delete user", "error", err, "user_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
