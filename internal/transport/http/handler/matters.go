package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"easy-matters/internal/domain"
	"easy-matters/internal/service"
	httpez "easy-matters/internal/transport/http/ez"
)

type MatterService interface {
	Create(ctx context.Context, customerID uint, in service.CreateMatterInput) (*domain.Matter, error)
	List(ctx context.Context, customerID uint) ([]domain.Matter, error)
	Get(ctx context.Context, customerID, matterID uint) (*domain.Matter, error)
}

// Matters nests under /customers/:id/matters.
type Matters struct {
	svc MatterService
	l   *zap.Logger
}

func NewMatters(svc MatterService, l *zap.Logger) *Matters { return &Matters{svc: svc, l: l} }

func (h *Matters) Priority() int { return 30 }

func (h *Matters) MountAPI(_, authed *gin.RouterGroup) {
	ez := httpez.New(authed.Group("/customers/:id/matters"), h.l)

	type createIn struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Matter]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  httpez.BindNone,
		Status:  http.StatusCreated,
		FailMsg: "Failed to create matter",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Matter, error) {
			cid, err := customerID(c)
			if err != nil {
				return nil, err
			}
			var in createIn
			if err := c.ShouldBindJSON(&in); err != nil {
				return nil, httpez.BindError(err)
			}
			return h.svc.Create(c.Request.Context(), cid, service.CreateMatterInput{
				Name: in.Name, Description: in.Description,
			})
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Matter]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  httpez.BindNone,
		FailMsg: "Failed to fetch matters",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Matter, error) {
			cid, err := customerID(c)
			if err != nil {
				return nil, err
			}
			return h.svc.List(c.Request.Context(), cid)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Matter]{
		Method:  http.MethodGet,
		Path:    "/:matterId",
		Binder:  httpez.BindNone,
		FailMsg: "Failed to fetch matter",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Matter, error) {
			cid, err := customerID(c)
			if err != nil {
				return nil, err
			}
			mid, err := httpez.ParamID(c, "matterId", domain.ErrInvalidMatterID)
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), cid, mid)
		},
	})
}
