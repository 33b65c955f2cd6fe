package http

import (
	"github.com/gin-gonic/gin"

	"dida-sync/internal/task"
	"dida-sync/pkg/log"
)

// Handler is the public interface for the task HTTP delivery layer.
type Handler interface {
	Query(c *gin.Context)
	Sync(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc task.UseCase
}

// New creates a new HTTP handler for the task sync domain.
func New(l log.Logger, uc task.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
