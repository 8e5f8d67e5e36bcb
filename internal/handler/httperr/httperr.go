package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Codes are stable, machine readable counterparts of the HTTP status.
const (
	CodeValidation   = "validation_failed"
	CodeUnauthorized = "unauthenticated"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeUpstream     = "upstream_unavailable"
	CodeInternal     = "internal_error"
)

type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

// CodeFor returns the error code rendered for status.
func CodeFor(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return CodeUpstream
	default:
		return CodeInternal
	}
}

func NewResponse(status int, msg string, detail any) Response {
	return Response{
		Status: status,
		Error:  Body{Code: CodeFor(status), Message: msg},
		Detail: detail,
	}
}

// AbortWithError writes the JSON error and records err on the context so the
// request logger can report the cause that the client never sees.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: AbortWithError needs a cause")
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
