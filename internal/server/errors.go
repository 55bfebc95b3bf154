package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/layoutopt/internal/problem"
	"github.com/katalvlaran/layoutopt/qap"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// clientErrors are answered with 400 and the error text.
var clientErrors = []error{
	problem.ErrInvalidProblem,
	qap.ErrNilMatrix,
	qap.ErrNonSquare,
	qap.ErrShapeMismatch,
	qap.ErrNegativeWeight,
	qap.ErrNonFinite,
	qap.ErrInvalidAssignment,
	qap.ErrUnsupportedAlgorithm,
	qap.ErrInvalidOptions,
}

// statusFor maps an error onto an HTTP status code.
func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, qap.ErrTooLarge):
		return http.StatusUnprocessableEntity
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// abortWithError writes the error response. 5xx answers hide the cause,
// which is attached to the gin context for the request log instead.
func abortWithError(ctx *gin.Context, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error(), RequestID: ctx.GetString(RequestIDKey)}
	if status >= http.StatusInternalServerError {
		_ = ctx.Error(err)
		resp.Error = "internal error"
	}
	ctx.AbortWithStatusJSON(status, resp)
}
