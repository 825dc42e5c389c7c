package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-widget/internal/widget"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errNoSession          = errors.New("no session in context")
	errSessionUnavailable = errors.New("session unavailable")
)

// apiError is the body of every failed response. Code is stable for
// clients, Message is for humans.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e apiError) Error() string {
	return e.Message
}

// errorFor maps err to a response. Only sentinel texts reach the
// client, never the wrapped cause.
func errorFor(err error) apiError {
	switch {
	case errors.Is(err, errInvalidRequestBody):
		return apiError{http.StatusBadRequest, "invalid_request", errInvalidRequestBody.Error()}
	case errors.Is(err, errNoSession):
		return apiError{http.StatusUnauthorized, "no_session", errNoSession.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apiError{http.StatusServiceUnavailable, "unavailable", errSessionUnavailable.Error()}
	case errors.Is(err, widget.ErrElementNotFound):
		return apiError{http.StatusInternalServerError, "widget_unavailable", errSessionUnavailable.Error()}
	default:
		return apiError{http.StatusInternalServerError, "internal", http.StatusText(http.StatusInternalServerError)}
	}
}

func abort(c *gin.Context, err error) {
	apiErr := errorFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}
