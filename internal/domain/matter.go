package domain

import (
	"context"
	"time"
)

type Matter struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CustomerID  uint      `json:"customerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MatterRepository interface {
	// Create fails with ErrCustomerNotFound when the customer row is missing.
	Create(ctx context.Context, m *Matter) error
	FindByID(ctx context.Context, id uint) (*Matter, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]Matter, error)
}
