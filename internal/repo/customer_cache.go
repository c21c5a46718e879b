package repo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"easy-matters/internal/core/cache"
	"easy-matters/internal/domain"
)

// CachingCustomerRepo serves FindByID from redis and drops the entry on
// every write to that customer.
type CachingCustomerRepo struct {
	domain.CustomerRepository
	c   *cache.Cache
	ttl time.Duration
	l   *zap.Logger
}

func NewCachingCustomerRepo(next domain.CustomerRepository, c *cache.Cache, ttl time.Duration, l *zap.Logger) *CachingCustomerRepo {
	if l == nil {
		l = zap.NewNop()
	}
	return &CachingCustomerRepo{CustomerRepository: next, c: c, ttl: ttl, l: l}
}

func customerKey(id uint) string { return fmt.Sprintf("customer:%d", id) }

func (r *CachingCustomerRepo) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	return cache.GetOrLoadJSON(r.c, ctx, customerKey(id), r.ttl, func(ctx context.Context) (*domain.Customer, error) {
		return r.CustomerRepository.FindByID(ctx, id)
	})
}

// Writes drop the key before and after the statement so a lookup that
// raced the write cannot leave the old row cached.
func (r *CachingCustomerRepo) Update(ctx context.Context, id uint, u domain.CustomerUpdate) (*domain.Customer, error) {
	r.invalidate(ctx, id)
	out, err := r.CustomerRepository.Update(ctx, id, u)
	r.invalidate(ctx, id)
	return out, err
}

func (r *CachingCustomerRepo) SetActive(ctx context.Context, id uint, active bool) (*domain.Customer, error) {
	r.invalidate(ctx, id)
	out, err := r.CustomerRepository.SetActive(ctx, id, active)
	r.invalidate(ctx, id)
	return out, err
}

func (r *CachingCustomerRepo) invalidate(ctx context.Context, id uint) {
	if r.c == nil {
		return
	}
	if err := r.c.Delete(context.WithoutCancel(ctx), customerKey(id)); err != nil {
		r.l.Warn("customer cache invalidation failed", zap.Uint("customer_id", id), zap.Error(err))
	}
}
