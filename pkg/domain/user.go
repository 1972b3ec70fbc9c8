package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status labels an account. It is set by administrative action; no state
// machine transitions are enforced here.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusBlocked   Status = "BLOCKED"
	StatusSuspended Status = "SUSPENDED"
)

// Valid reports whether s is a known account status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusBlocked, StatusSuspended:
		return true
	}
	return false
}

// Language is the account holder's preferred language.
type Language string

const (
	LanguageFR Language = "FR"
	LanguageEN Language = "EN"
	LanguageAR Language = "AR"
)

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	switch l {
	case LanguageFR, LanguageEN, LanguageAR:
		return true
	}
	return false
}

// User represents the account.
type User struct {
	ID            uuid.UUID
	Code          string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Phone         string
	Status        Status
	Attempts      int
	Language      Language
	StartValidity *time.Time
	EndValidity   *time.Time
	ProfileID     *uuid.UUID
	CustomerID    *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserCode derives the human-readable user code from a name pair and a
// per-pair sequence number: lower(first)_lower(last)_N.
func UserCode(firstName, lastName string, seq int) string {
	return fmt.Sprintf("%s_%s_%d", strings.ToLower(firstName), strings.ToLower(lastName), seq)
}

