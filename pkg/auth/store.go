package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

// UserStore is the persistence contract the account service depends on.
// Create derives and assigns the user's code from its name pair atomically
// with the insert, and enforces email/code uniqueness.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileStore handles profile lookups and admin-side lifecycle. Deleting a
// profile clears the reference on users pointing at it.
type ProfileStore interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByCode(ctx context.Context, code string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerStore handles customer lookups and admin-side lifecycle, with the
// same reference-clearing delete semantics as ProfileStore.
type CustomerStore interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByCode(ctx context.Context, code string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
