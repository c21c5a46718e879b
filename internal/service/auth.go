package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"easy-matters/internal/domain"
	"easy-matters/pkg/utils"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt ignores anything longer
)

type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenIssuer
}

func NewAuthService(users domain.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type SignupInput struct {
	Email    string
	FirmName string
	Password string
}

type LoginResult struct {
	AccessToken string          `json:"access_token"`
	User        domain.Identity `json:"user"`
}

// dummyHash is compared against when the email is unknown so both login
// failures cost one bcrypt verification.
var dummyHash = sync.OnceValue(func() string {
	h, _ := utils.HashPassword("easy-matters-dummy-password")
	return h
})

var validate = validator.New()

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	u := &domain.User{
		Email:    normalizeEmail(in.Email),
		FirmName: strings.TrimSpace(in.FirmName),
	}
	switch {
	case u.Email == "":
		return nil, domain.ErrEmailRequired
	case validate.Var(u.Email, "email") != nil:
		return nil, domain.ErrInvalidEmail
	case u.FirmName == "":
		return nil, domain.ErrFirmNameRequired
	case len(in.Password) < minPasswordLen || len(in.Password) > maxPasswordLen:
		return nil, domain.ErrPasswordLength
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		utils.CheckPassword(password, dummyHash())
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	id := u.Identity()
	tok, err := s.tokens.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{AccessToken: tok, User: id}, nil
}
