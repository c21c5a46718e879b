package service

import (
	"context"
	"strings"

	"easy-matters/internal/domain"
)

type CustomerService struct {
	repo domain.CustomerRepository
}

func NewCustomerService(repo domain.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

type CreateCustomerInput struct {
	Name        string
	PhoneNumber string
}

// UpdateCustomerInput leaves the phone number alone when PhoneNumber is
// nil; a nil IsActive reactivates the customer.
type UpdateCustomerInput struct {
	Name        string
	PhoneNumber *string
	IsActive    *bool
}

func (s *CustomerService) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error) {
	return s.repo.List(ctx, f)
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error) {
	c := &domain.Customer{
		Name:        strings.TrimSpace(in.Name),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		IsActive:    true,
	}
	if c.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, in UpdateCustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	u := domain.CustomerUpdate{Name: name, IsActive: true}
	if in.PhoneNumber != nil {
		phone := strings.TrimSpace(*in.PhoneNumber)
		u.PhoneNumber = &phone
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	return s.repo.Update(ctx, id, u)
}

// Delete is a soft delete: the row stays with isActive false and its
// matters are untouched.
func (s *CustomerService) Delete(ctx context.Context, id uint) (*domain.Customer, error) {
	return s.repo.SetActive(ctx, id, false)
}
