package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"easy-matters/internal/domain"
)

type MatterRepo struct{ db *gorm.DB }

func NewMatterRepo(db *gorm.DB) *MatterRepo { return &MatterRepo{db: db} }

func (r *MatterRepo) Create(ctx context.Context, mt *domain.Matter) error {
	m := MatterModel{Name: mt.Name, Description: mt.Description, CustomerID: mt.CustomerID}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.Wrap(domain.ErrCustomerNotFound, err)
	}
	if err != nil {
		return fmt.Errorf("create matter: %w", err)
	}
	*mt = *m.toDomain()
	return nil
}

func (r *MatterRepo) FindByID(ctx context.Context, id uint) (*domain.Matter, error) {
	var m MatterModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMatterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find matter %d: %w", id, err)
	}
	return m.toDomain(), nil
}

func (r *MatterRepo) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Matter, error) {
	var ms []MatterModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at, id").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("list matters of customer %d: %w", customerID, err)
	}
	out := make([]domain.Matter, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].toDomain())
	}
	return out, nil
}
