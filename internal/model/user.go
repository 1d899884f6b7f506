package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	UserName     string
	Email        string
	StoredSecret string // argon2id, never serialized
	CreatedAt    time.Time
}

// PublicUser is the outward-facing view of a User.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"userName"`
	Email    string    `json:"email"`
}

// Public strips the stored secret.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
	}
}

// Registration is the result of a successful account creation.
type Registration struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
