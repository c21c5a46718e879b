package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"easy-matters/internal/domain"
	httpez "easy-matters/internal/transport/http/ez"
)

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
}

type Users struct {
	svc UserService
	l   *zap.Logger
}

func NewUsers(svc UserService, l *zap.Logger) *Users { return &Users{svc: svc, l: l} }

func (h *Users) MountAPI(_, authed *gin.RouterGroup) {
	type row struct {
		ID        uint      `json:"id"`
		Email     string    `json:"email"`
		FirmName  string    `json:"firmName"`
		CreatedAt time.Time `json:"createdAt"`
	}
	httpez.RegisterAction(httpez.New(authed, h.l), httpez.Action[struct{}, []row]{
		Method:  http.MethodGet,
		Path:    "/users",
		Binder:  httpez.BindNone,
		FailMsg: "Failed to fetch users",
		Handler: func(c *gin.Context, _ *struct{}) ([]row, error) {
			us, err := h.svc.List(c.Request.Context())
			if err != nil {
				return nil, err
			}
			out := make([]row, 0, len(us))
			for _, u := range us {
				out = append(out, row{ID: u.ID, Email: u.Email, FirmName: u.FirmName, CreatedAt: u.CreatedAt})
			}
			return out, nil
		},
	})
}
