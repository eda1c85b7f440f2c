package httperr

import (
	"net/http"
	"strconv"
	"time"

	"carwash-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// RetryAfterKey holds the Retry-After hint (time.Duration) for contention responses.
const RetryAfterKey = "retry_after"

type ErrorBody struct {
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
	Detail any       `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail
	abort(c, err, resp)
}

// Abort maps a use-case error onto its HTTP status by kind. Unclassified errors become 500 and
// keep their text out of the response body.
func Abort(c *gin.Context, err error) {
	typed, ok := errs.As(err)
	if !ok || typed.Kind == errs.KindInternal {
		resp := Response{Status: http.StatusInternalServerError}
		resp.Error.Message = "Internal server error"
		abort(c, err, resp)
		return
	}

	resp := Response{Status: StatusOf(typed.Kind)}
	resp.Error = ErrorBody{
		Code:      string(typed.Code),
		Message:   typed.Message,
		Field:     typed.Field,
		Retryable: typed.Retryable(),
	}
	if len(typed.Details) > 0 {
		resp.Detail = typed.Details
	}
	if typed.Retryable() {
		c.Header("Retry-After", retryAfterSeconds(c))
	}
	abort(c, err, resp)
}

func StatusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindBusinessRule:
		return http.StatusUnprocessableEntity
	case errs.KindContention:
		return http.StatusConflict
	case errs.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func retryAfterSeconds(c *gin.Context) string {
	d := c.GetDuration(RetryAfterKey)
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
