package httpserver

import (
	"context"

	taskHTTP "dida-sync/internal/task/delivery/http"
)

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv HTTPServer) registerDomainRoutes() {
	api := srv.gin.Group("/api/v1")

	taskHTTP.RegisterRoutes(api, srv.taskHandler)

	srv.l.Infof(context.Background(), "Task domain registered")
}
