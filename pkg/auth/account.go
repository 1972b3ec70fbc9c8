package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

// AccountService orchestrates account lifecycle operations against the
// entity stores.
type AccountService struct {
	users     UserStore
	profiles  ProfileStore
	customers CustomerStore
}

// NewAccountService creates a new account service.
func NewAccountService(users UserStore, profiles ProfileStore, customers CustomerStore) *AccountService {
	return &AccountService{
		users:     users,
		profiles:  profiles,
		customers: customers,
	}
}

// RegisterInput holds registration fields. Email and Password are required;
// everything else is optional.
type RegisterInput struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Phone         string
	Status        domain.Status
	Language      domain.Language
	StartValidity *time.Time
	EndValidity   *time.Time
	ProfileID     *uuid.UUID
	CustomerID    *uuid.UUID
}

// UpdateInput holds the fields mutable through the public update path.
// Nil means "leave unchanged".
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Password  *string
}

// Register creates a new account. The user code is derived from the
// lower-cased name pair plus a per-pair sequence number, assigned atomically
// by the store at insert time.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, domain.ErrPasswordRequired
	}

	status := in.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	language := in.Language
	if language == "" {
		language = domain.LanguageEN
	}
	if !language.Valid() {
		return nil, domain.ErrInvalidLanguage
	}

	// Referenced profile/customer must exist at registration time.
	if in.ProfileID != nil {
		if _, err := s.profiles.GetByID(ctx, *in.ProfileID); err != nil {
			return nil, err
		}
	}
	if in.CustomerID != nil {
		if _, err := s.customers.GetByID(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:            uuid.New(),
		Email:         NormalizeEmail(in.Email),
		PasswordHash:  hash,
		FirstName:     SanitizeName(in.FirstName),
		LastName:      SanitizeName(in.LastName),
		Phone:         SanitizeName(in.Phone),
		Status:        status,
		Language:      language,
		StartValidity: in.StartValidity,
		EndValidity:   in.EndValidity,
		ProfileID:     in.ProfileID,
		CustomerID:    in.CustomerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies email and password and returns the user on success.
// Unknown email and wrong password both yield ErrInvalidCredentials, so a
// caller cannot distinguish whether the account exists.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users. The result is unbounded; every row comes back.
func (s *AccountService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Update mutates the target user's name, phone, and (when provided)
// password. Any other field is left untouched; code and email never change
// after creation.
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = SanitizeName(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = SanitizeName(*in.LastName)
	}
	if in.Phone != nil {
		user.Phone = SanitizeName(*in.Phone)
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete permanently removes a user. There is no soft delete.
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}
