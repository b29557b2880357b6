package domain

import "time"

// User represents a system user.
type User struct {
	ID             int64
	Name           string
	Email          string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleCustomer can operate on accounts they own.
	RoleCustomer Role = "customer"

	// RoleAdmin can operate on any account and decide applications.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Actor is the authenticated caller's capability, passed explicitly
// into every engine and workflow call instead of being read from
// ambient session state.
type Actor struct {
	UserID int64
	Role   Role
}

// Elevated reports whether the actor carries administrative authority.
func (a Actor) Elevated() bool {
	return a.Role == RoleAdmin
}
