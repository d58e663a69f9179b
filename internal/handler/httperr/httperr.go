package httperr

import (
	"net/http"

	"order-fulfillment/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// Detail carries the error class so clients can branch without parsing
// messages.
type Detail struct {
	Code string `json:"code"`
}

const (
	CodeValidation     = "VALIDATION_FAILED"
	CodeNotFound       = "NOT_FOUND"
	CodeStateConflict  = "STATE_CONFLICT"
	CodeBusinessRule   = "BUSINESS_RULE_VIOLATED"
	CodeUpstreamFailed = "UPSTREAM_FAILED"
	CodeInternal       = "INTERNAL_ERROR"
)

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps the error class to an HTTP status.
func StatusOf(err error) (int, string) {
	switch errs.Class(err) {
	case errs.ErrValidation:
		return http.StatusBadRequest, CodeValidation
	case errs.ErrNotFound:
		return http.StatusNotFound, CodeNotFound
	case errs.ErrStateConflict:
		return http.StatusConflict, CodeStateConflict
	case errs.ErrBusinessRule:
		return http.StatusUnprocessableEntity, CodeBusinessRule
	case errs.ErrExternalDependency:
		return http.StatusBadGateway, CodeUpstreamFailed
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// Abort renders a use case error. Classified errors expose their message;
// anything else becomes a generic 500.
func Abort(c *gin.Context, err error) {
	status, code := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	AbortWithError(c, status, err, msg, Detail{Code: code})
}

// BadRequest is for input rejected before reaching a use case.
func BadRequest(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, err, msg, Detail{Code: CodeValidation})
}
