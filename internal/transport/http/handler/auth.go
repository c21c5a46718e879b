package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"easy-matters/internal/domain"
	"easy-matters/internal/service"
	httpez "easy-matters/internal/transport/http/ez"
	mdw "easy-matters/internal/transport/http/middleware"
)

type AuthService interface {
	Signup(ctx context.Context, in service.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// Auth serves /auth: signup and login are public, /auth/me needs a token.
type Auth struct {
	svc AuthService
	l   *zap.Logger
}

func NewAuth(svc AuthService, l *zap.Logger) *Auth { return &Auth{svc: svc, l: l} }

func (h *Auth) Priority() int { return 10 }

func (h *Auth) MountAPI(public, authed *gin.RouterGroup) {
	pub := httpez.New(public.Group("/auth"), h.l)

	type signupIn struct {
		Email    string `json:"email" binding:"required"`
		FirmName string `json:"firmName" binding:"required"`
		Password string `json:"password" binding:"required,min=8,max=72"`
	}
	httpez.RegisterAction(pub, httpez.Action[signupIn, domain.Identity]{
		Method:  http.MethodPost,
		Path:    "/signup",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		FailMsg: "Failed to create user",
		Handler: func(c *gin.Context, in *signupIn) (domain.Identity, error) {
			u, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
				Email: in.Email, FirmName: in.FirmName, Password: in.Password,
			})
			if err != nil {
				return domain.Identity{}, err
			}
			return u.Identity(), nil
		},
	})

	type loginIn struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	httpez.RegisterAction(pub, httpez.Action[loginIn, *service.LoginResult]{
		Method:  http.MethodPost,
		Path:    "/login",
		Binder:  httpez.BindJSON,
		FailMsg: "Failed to login",
		Handler: func(c *gin.Context, in *loginIn) (*service.LoginResult, error) {
			return h.svc.Login(c.Request.Context(), in.Email, in.Password)
		},
	})

	type meOut struct {
		User domain.Identity `json:"user"`
	}
	httpez.RegisterAction(httpez.New(authed.Group("/auth"), h.l), httpez.Action[struct{}, meOut]{
		Method:  http.MethodGet,
		Path:    "/me",
		Binder:  httpez.BindNone,
		FailMsg: domain.ErrAuthFailed.Msg,
		Handler: func(c *gin.Context, _ *struct{}) (meOut, error) {
			id, ok := mdw.Identity(c)
			if !ok {
				return meOut{}, domain.ErrAuthFailed
			}
			return meOut{User: id}, nil
		},
	})
}
