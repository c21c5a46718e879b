package middleware

import (
	"github.com/gin-gonic/gin"

	"easy-matters/internal/core/auth"
	"easy-matters/internal/domain"
	resp "easy-matters/internal/transport/http/response"
)

// KeyIdentity holds the domain.Identity of an authenticated request.
const KeyIdentity = "identity"

// AuthJWT rejects requests without a valid bearer token and stores the
// caller identity on both the gin context and the request context.
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := j.ParseHeader(c.GetHeader("Authorization"))
		if err != nil {
			resp.Abort(c, err, domain.ErrAuthFailed.Msg)
			return
		}
		c.Set(KeyIdentity, id)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// Identity returns the caller set by AuthJWT.
func Identity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(KeyIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}

func identityID(v any) uint {
	if id, ok := v.(domain.Identity); ok {
		return id.ID
	}
	return 0
}
