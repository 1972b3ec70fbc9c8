package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

// ProfilesRepository handles profile persistence. Deleting a profile relies
// on the users.profile_id ON DELETE SET NULL constraint to clear references
// without touching the referencing users.
type ProfilesRepository struct {
	db *sql.DB
}

// NewProfilesRepository creates a new profiles repository.
func NewProfilesRepository(db *sql.DB) *ProfilesRepository {
	return &ProfilesRepository{db: db}
}

// Create inserts a new profile.
func (r *ProfilesRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, code, name, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Code, profile.Name, profile.Description, profile.IsActive,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrCodeTaken
	}
	return err
}

// GetByID retrieves a profile by ID.
func (r *ProfilesRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT id, code, name, description, is_active FROM profiles WHERE id = $1`
	profile := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.Code, &profile.Name, &profile.Description, &profile.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByCode retrieves a profile by its unique code.
func (r *ProfilesRepository) GetByCode(ctx context.Context, code string) (*domain.Profile, error) {
	query := `SELECT id, code, name, description, is_active FROM profiles WHERE code = $1`
	profile := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&profile.ID, &profile.Code, &profile.Name, &profile.Description, &profile.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// List returns all profiles.
func (r *ProfilesRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `SELECT id, code, name, description, is_active FROM profiles ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile := &domain.Profile{}
		if err := rows.Scan(&profile.ID, &profile.Code, &profile.Name, &profile.Description, &profile.IsActive); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// Delete removes a profile. Referencing users keep existing; their
// profile_id is nulled by the foreign key constraint.
func (r *ProfilesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
