package domain

import (
	"context"
	"time"
)

type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	FirmName     string    `json:"firmName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the public part of a user, as carried in access tokens.
type Identity struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FirmName string `json:"firmName"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, FirmName: u.FirmName}
}

type UserRepository interface {
	// Create fails with ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context) ([]User, error)
}
