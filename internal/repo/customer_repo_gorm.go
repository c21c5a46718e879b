package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"easy-matters/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	m := CustomerModel{Name: c.Name, PhoneNumber: c.PhoneNumber, IsActive: true}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	*c = *m.toDomain()
	return nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var m CustomerModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find customer %d: %w", id, err)
	}
	return m.toDomain(), nil
}

func (r *CustomerRepo) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error) {
	q := r.db.WithContext(ctx).Order("id")
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	var ms []CustomerModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]domain.Customer, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].toDomain())
	}
	return out, nil
}

func (r *CustomerRepo) Update(ctx context.Context, id uint, u domain.CustomerUpdate) (*domain.Customer, error) {
	cols := map[string]any{
		"name":      u.Name,
		"is_active": u.IsActive,
	}
	if u.PhoneNumber != nil {
		cols["phone_number"] = *u.PhoneNumber
	}
	res := r.db.WithContext(ctx).Model(&CustomerModel{ID: id}).Updates(cols)
	if res.Error != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *CustomerRepo) SetActive(ctx context.Context, id uint, active bool) (*domain.Customer, error) {
	res := r.db.WithContext(ctx).Model(&CustomerModel{ID: id}).Update("is_active", active)
	if res.Error != nil {
		return nil, fmt.Errorf("set customer %d active=%t: %w", id, active, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	return r.FindByID(ctx, id)
}
