package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"easy-matters/internal/domain"
	"easy-matters/internal/service"
	httpez "easy-matters/internal/transport/http/ez"
)

type CustomerService interface {
	List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error)
	Get(ctx context.Context, id uint) (*domain.Customer, error)
	Create(ctx context.Context, in service.CreateCustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id uint, in service.UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id uint) (*domain.Customer, error)
}

type Customers struct {
	svc CustomerService
	l   *zap.Logger
}

func NewCustomers(svc CustomerService, l *zap.Logger) *Customers {
	return &Customers{svc: svc, l: l}
}

func (h *Customers) Priority() int { return 20 }

func customerID(c *gin.Context) (uint, error) {
	return httpez.ParamID(c, "id", domain.ErrInvalidCustomerID)
}

func (h *Customers) MountAPI(_, authed *gin.RouterGroup) {
	ez := httpez.New(authed.Group("/customers"), h.l)

	type listQ struct {
		Active *bool `form:"active"`
	}
	httpez.RegisterAction(ez, httpez.Action[listQ, []domain.Customer]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  httpez.BindQuery,
		FailMsg: "Failed to fetch customers",
		Handler: func(c *gin.Context, in *listQ) ([]domain.Customer, error) {
			return h.svc.List(c.Request.Context(), domain.CustomerFilter{Active: in.Active})
		},
	})

	type createIn struct {
		Name        string `json:"name" binding:"required"`
		PhoneNumber string `json:"phoneNumber"`
	}
	httpez.RegisterAction(ez, httpez.Action[createIn, *domain.Customer]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		FailMsg: "Failed to create customer",
		Handler: func(c *gin.Context, in *createIn) (*domain.Customer, error) {
			return h.svc.Create(c.Request.Context(), service.CreateCustomerInput{
				Name: in.Name, PhoneNumber: in.PhoneNumber,
			})
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Customer]{
		Method:  http.MethodGet,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		FailMsg: "Failed to fetch customer",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Customer, error) {
			id, err := customerID(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), id)
		},
	})

	type updateIn struct {
		Name        string  `json:"name" binding:"required"`
		PhoneNumber *string `json:"phoneNumber"`
		IsActive    *bool   `json:"isActive"`
	}
	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Customer]{
		Method:  http.MethodPut,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		FailMsg: "Failed to update customer",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Customer, error) {
			id, err := customerID(c)
			if err != nil {
				return nil, err
			}
			var in updateIn
			if err := c.ShouldBindJSON(&in); err != nil {
				if errors.Is(err, io.EOF) {
					return nil, domain.ErrNoUpdateData
				}
				return nil, httpez.BindError(err)
			}
			return h.svc.Update(c.Request.Context(), id, service.UpdateCustomerInput{
				Name: in.Name, PhoneNumber: in.PhoneNumber, IsActive: in.IsActive,
			})
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Customer]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		FailMsg: "Failed to delete customer",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Customer, error) {
			id, err := customerID(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Delete(c.Request.Context(), id)
		},
	})
}
