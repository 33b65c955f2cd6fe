package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	dida := rg.Group("/dida")
	{
		dida.POST("/tasks/query", h.Query)
		dida.POST("/sync", h.Sync)
	}
}
