package domain

import "github.com/google/uuid"

// Profile is an administrative grouping assigned to users. Profiles are
// created and deleted by the admin console; deleting one clears the
// reference on users, it never deletes them.
type Profile struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Description string
	IsActive    bool
}

// Customer is an organization a user belongs to. Same lifecycle rules as
// Profile.
type Customer struct {
	ID       uuid.UUID
	Code     string
	Name     string
	IsActive bool
}
