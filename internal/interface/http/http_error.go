package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/vastr/panchanga/pkg/errors"
)

// HTTPError is the transport view of a failure: the status to send and the
// code and message rendered into {"error":{...}}.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// statusByCode maps service error codes onto HTTP statuses.
var statusByCode = map[string]int{
	apperrors.CodeInvalidInput:     http.StatusBadRequest,
	apperrors.CodeProviderFailure:  http.StatusBadGateway,
	apperrors.CodeSolverDivergence: http.StatusInternalServerError,
}

// asHTTPError resolves err into the response to send. Coded service errors
// keep their code; anything unrecognised becomes an opaque internal_error.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	code := apperrors.CodeOf(err)
	if status, ok := statusByCode[code]; ok {
		return &HTTPError{Status: status, Code: code, Message: err.Error(), Err: err}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// abortWithError records err for errorHandlingMiddleware and stops the chain.
func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
