package ez

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"easy-matters/internal/domain"
	mdw "easy-matters/internal/transport/http/middleware"
	resp "easy-matters/internal/transport/http/response"
)

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param itself
)

type EZ struct {
	g *gin.RouterGroup
	l *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, l: l}
}

// Action is one route: I is the bound input, O the JSON output.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	// Status on success, 200 when zero.
	Status int
	// FailMsg is what the client sees for unclassified errors.
	FailMsg string
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	failMsg := a.FailMsg
	if failMsg == "" {
		failMsg = "Unknown error"
	}

	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			resp.Abort(c, BindError(bindErr), failMsg)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			fields := []zap.Field{
				zap.Error(err),
				zap.String("rid", c.GetString(mdw.KeyRequestID)),
				zap.String("route", c.FullPath()),
			}
			switch domain.KindOf(err) {
			case domain.KindInternal:
				_ = c.Error(err)
				e.l.Error(failMsg, fields...)
			case domain.KindTimeout, domain.KindUnavailable:
				e.l.Warn(failMsg, fields...)
			}
			resp.Abort(c, err, failMsg)
			return
		}
		c.JSON(status, out)
	}

	e.g.Handle(strings.ToUpper(a.Method), a.Path, h)
}

// ParamID reads a positive integer path parameter; invalid is returned
// for anything else.
func ParamID(c *gin.Context, name string, invalid error) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || n == 0 {
		return 0, invalid
	}
	return uint(n), nil
}

// BindError turns gin binding failures into invalid-input errors with a
// readable message.
func BindError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return &domain.Error{Kind: domain.KindInvalidInput, Msg: "Invalid request body", Err: err}
	}
	fe := ve[0]
	field := humanize(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "email":
		msg = field + " must be a valid email address"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		msg = field + " is invalid"
	}
	return &domain.Error{Kind: domain.KindInvalidInput, Msg: msg, Err: err}
}

// humanize turns FirmName into "Firm name".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
