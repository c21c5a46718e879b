package response

import (
	"github.com/gin-gonic/gin"

	"easy-matters/internal/domain"
)

type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func Error(kind domain.Kind, msg string) ErrorBody {
	return ErrorBody{Error: msg, Code: kind.String()}
}

// Abort writes err as an error body with the status of its kind.
// fallback replaces the message of unclassified errors.
func Abort(c *gin.Context, err error, fallback string) {
	kind := domain.KindOf(err)
	c.AbortWithStatusJSON(StatusOf(kind), Error(kind, domain.MessageOf(err, fallback)))
}
