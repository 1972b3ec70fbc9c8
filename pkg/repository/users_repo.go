package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

// UsersRepository handles user persistence.
type UsersRepository struct {
	db *sql.DB
}

// NewUsersRepository creates a new users repository.
func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

const userColumns = `
	id, code, email, password_hash, first_name, last_name, phone,
	status, attempts, language, start_validity, end_validity,
	profile_id, customer_id, created_at, updated_at
`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.Code, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Phone,
		&user.Status, &user.Attempts, &user.Language,
		&user.StartValidity, &user.EndValidity,
		&user.ProfileID, &user.CustomerID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user. The user code is derived inside the same
// transaction from a per-name-pair counter, so concurrent registrations
// with identical names cannot collide.
func (r *UsersRepository) Create(ctx context.Context, user *domain.User) error {
	return Tx(ctx, r.db, func(tx *sql.Tx) error {
		seqQuery := `
			INSERT INTO user_code_counters (first_name, last_name, next_seq)
			VALUES (lower($1), lower($2), 1)
			ON CONFLICT (first_name, last_name)
			DO UPDATE SET next_seq = user_code_counters.next_seq + 1
			RETURNING next_seq
		`
		var seq int
		if err := tx.QueryRowContext(ctx, seqQuery, user.FirstName, user.LastName).Scan(&seq); err != nil {
			return err
		}
		user.Code = domain.UserCode(user.FirstName, user.LastName, seq)

		insertQuery := `
			INSERT INTO users (` + userColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`
		_, err := tx.ExecContext(ctx, insertQuery,
			user.ID, user.Code, user.Email, user.PasswordHash,
			user.FirstName, user.LastName, user.Phone,
			user.Status, user.Attempts, user.Language,
			user.StartValidity, user.EndValidity,
			user.ProfileID, user.CustomerID,
			user.CreatedAt, user.UpdatedAt,
		)
		return mapUniqueViolation(err)
	})
}

// GetByID retrieves a user by ID.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByCode retrieves a user by its derived code.
func (r *UsersRepository) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE code = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, code))
}

// List returns all users, newest first.
func (r *UsersRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update persists mutable user fields. Code and email are immutable and are
// deliberately absent from the statement.
func (r *UsersRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET password_hash = $2, first_name = $3, last_name = $4, phone = $5,
		    status = $6, attempts = $7, language = $8,
		    start_validity = $9, end_validity = $10,
		    profile_id = $11, customer_id = $12, updated_at = $13
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		user.ID, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		user.Status, user.Attempts, user.Language,
		user.StartValidity, user.EndValidity,
		user.ProfileID, user.CustomerID, time.Now(),
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete permanently deletes a user.
func (r *UsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// mapUniqueViolation translates Postgres unique-constraint violations on the
// users table into domain errors.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "users_email_key":
			return domain.ErrEmailTaken
		case "users_code_key":
			return domain.ErrCodeTaken
		}
	}
	return err
}
