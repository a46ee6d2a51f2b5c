package core

import (
	"github.com/google/uuid"
)

// Role is the capability label attached to an authenticated user
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// StaffRoles may review and transition payments
var StaffRoles = []Role{RoleEmployee, RoleAdmin}

// Valid checks the role is one of the known labels
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated identity performing an operation
type Actor struct {
	ID   uuid.UUID
	Role Role
	Name string
}

// Allowed is the single capability check used by every privileged operation.
func Allowed(role Role, required ...Role) bool {
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns ErrForbidden unless the actor holds one of the required roles
func (a Actor) Authorize(required ...Role) error {
	if !Allowed(a.Role, required...) {
		return ErrForbidden
	}
	return nil
}
