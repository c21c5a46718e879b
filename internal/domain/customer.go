package domain

import (
	"context"
	"time"
)

type Customer struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CustomerFilter narrows List. A nil Active lists every customer.
type CustomerFilter struct {
	Active *bool
}

// CustomerUpdate is a full write of the editable fields, except that a nil
// PhoneNumber leaves the stored number alone.
type CustomerUpdate struct {
	Name        string
	PhoneNumber *string
	IsActive    bool
}

type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	List(ctx context.Context, f CustomerFilter) ([]Customer, error)
	// Update writes u in one statement and returns the stored row.
	Update(ctx context.Context, id uint, u CustomerUpdate) (*Customer, error)
	// SetActive flips the soft-delete flag and returns the stored row.
	SetActive(ctx context.Context, id uint, active bool) (*Customer, error)
}
