package service

import (
	"context"
	"strings"

	"easy-matters/internal/domain"
)

type MatterService struct {
	customers domain.CustomerRepository
	matters   domain.MatterRepository
}

func NewMatterService(customers domain.CustomerRepository, matters domain.MatterRepository) *MatterService {
	return &MatterService{customers: customers, matters: matters}
}

type CreateMatterInput struct {
	Name        string
	Description string
}

func (s *MatterService) Create(ctx context.Context, customerID uint, in CreateMatterInput) (*domain.Matter, error) {
	m := &domain.Matter{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CustomerID:  customerID,
	}
	if m.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if m.Description == "" {
		return nil, domain.ErrDescRequired
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	if err := s.matters.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List works for inactive customers too.
func (s *MatterService) List(ctx context.Context, customerID uint) ([]domain.Matter, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.matters.ListByCustomer(ctx, customerID)
}

// Get reports a matter owned by another customer as not found.
func (s *MatterService) Get(ctx context.Context, customerID, matterID uint) (*domain.Matter, error) {
	m, err := s.matters.FindByID(ctx, matterID)
	if err != nil {
		return nil, err
	}
	if m.CustomerID != customerID {
		return nil, domain.ErrMatterNotFound
	}
	return m, nil
}
