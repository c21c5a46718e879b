package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"easy-matters/internal/domain"
)

const bearerPrefix = "Bearer "

type Claims struct {
	UserID   uint   `json:"userId"`
	Email    string `json:"email"`
	FirmName string `json:"firmName"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() domain.Identity {
	return domain.Identity{ID: c.UserID, Email: c.Email, FirmName: c.FirmName}
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Leeway time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func (j *JWTer) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

func (j *JWTer) Issue(id domain.Identity) (string, error) {
	now := j.now()
	claims := Claims{
		UserID:   id.ID,
		Email:    id.Email,
		FirmName: id.FirmName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse verifies tokenStr and returns its claims. Errors are one of
// domain.ErrTokenExpired, domain.ErrInvalidToken or domain.ErrAuthFailed,
// wrapping the jwt cause.
func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(j.Leeway),
		jwt.WithTimeFunc(j.now),
	}
	if j.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.Issuer))
	}
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, domain.ErrAuthFailed
}

// ParseHeader accepts an Authorization header value with or without the
// Bearer prefix.
func (j *JWTer) ParseHeader(header string) (domain.Identity, error) {
	raw := strings.TrimSpace(header)
	if strings.HasPrefix(raw+" ", bearerPrefix) {
		raw = strings.TrimSpace(raw[len(bearerPrefix)-1:])
	}
	if raw == "" {
		return domain.Identity{}, domain.ErrNoToken
	}
	c, err := j.Parse(raw)
	if err != nil {
		return domain.Identity{}, err
	}
	return c.Identity(), nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.Wrap(domain.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return domain.Wrap(domain.ErrAuthFailed, err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return domain.Wrap(domain.ErrInvalidToken, err)
	default:
		return domain.Wrap(domain.ErrAuthFailed, err)
	}
}
