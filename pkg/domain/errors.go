package domain

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// Entity errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrCodeTaken        = errors.New("code already in use")
)

// Validation errors
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidLanguage  = errors.New("invalid language")
)
