package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/consumer"
)

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func abortError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

// statusFor maps a generation failure onto an HTTP status. Malformed
// replies are not transport errors: the client gets 200 with a failed view.
func statusFor(f consumer.Failure) int {
	switch f {
	case consumer.FailureNone, consumer.FailureMalformed:
		return http.StatusOK
	case consumer.FailureInvalidInput:
		return http.StatusBadRequest
	case consumer.FailureUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondView writes a consumer view for the outcome of one generation.
func respondView[T any](c *gin.Context, s *Server, data T, err error, placeholder T) {
	if err == nil {
		c.JSON(http.StatusOK, consumer.Success(data))
		return
	}
	f := consumer.Classify(err)
	if f == consumer.FailureInternal || f == consumer.FailureUnavailable {
		s.log.Warn("generation failed", "path", c.FullPath(), "error", err)
	} else {
		s.log.Debug("generation degraded", "path", c.FullPath(), "error", err)
	}
	c.JSON(statusFor(f), consumer.FailureView(err, placeholder))
}

// respondStoreError maps backend errors for the record endpoints.
func respondStoreError(c *gin.Context, s *Server, err error) {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		abortError(c, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, backend.ErrUnauthorized):
		abortError(c, http.StatusUnauthorized, "unauthorized", "sign in required")
	case consumer.Classify(err) == consumer.FailureInvalidInput:
		abortError(c, http.StatusBadRequest, "invalid_input", consumer.FailureInvalidInput.Message())
	default:
		s.log.Error("backend request failed", "path", c.FullPath(), "error", err)
		abortError(c, http.StatusInternalServerError, "internal", consumer.FailureInternal.Message())
	}
}
