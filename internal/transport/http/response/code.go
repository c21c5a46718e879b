package response

import (
	"net/http"

	"easy-matters/internal/domain"
)

// kindStatus is the single place error kinds become HTTP statuses.
var kindStatus = map[domain.Kind]int{
	domain.KindInvalidInput:         http.StatusBadRequest,
	domain.KindInvalidCredentials:   http.StatusUnauthorized,
	domain.KindTokenExpired:         http.StatusUnauthorized,
	domain.KindInvalidToken:         http.StatusUnauthorized,
	domain.KindAuthenticationFailed: http.StatusUnauthorized,
	domain.KindNotFound:             http.StatusNotFound,
	domain.KindDuplicateEmail:       http.StatusConflict,
	domain.KindRateLimited:          http.StatusTooManyRequests,
	domain.KindUnavailable:          http.StatusServiceUnavailable,
	domain.KindTimeout:              http.StatusGatewayTimeout,
	domain.KindInternal:             http.StatusInternalServerError,
}

func StatusOf(k domain.Kind) int {
	if s, ok := kindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}
