package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dida-sync/internal/task"
	"dida-sync/internal/task/repository"
	"dida-sync/pkg/response"
)

// mapError translates domain/use-case errors into HTTP responses: bad
// criteria are the caller's fault, a rejected sign-on maps to 401, anything
// else stays opaque.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, task.ErrUnknownService):
		response.Error(c, err, nil)
	case errors.Is(err, repository.ErrAuthentication):
		response.Unauthorized(c)
	default:
		response.InternalError(c, err)
	}
}
