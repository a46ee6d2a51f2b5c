package core

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered portal account
type User struct {
	ID            uuid.UUID
	FullName      string
	IDNumber      string
	AccountNumber string
	PasswordHash  string
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Actor returns the identity the user acts as
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, Name: u.FullName}
}
