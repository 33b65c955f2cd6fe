package http

import (
	"github.com/gin-gonic/gin"

	"dida-sync/internal/middleware"
	"dida-sync/internal/model"
	"dida-sync/pkg/response"
)

// Query godoc
// @Summary     Query tasks
// @Description Runs the filter-merge pipeline over the selected service and returns the ordered task list.
// @Tags        Dida
// @Accept      json
// @Produce     json
// @Param       body body queryReq true "Filter criteria"
// @Success     200 {object} queryResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Sign-on rejected"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/dida/tasks/query [POST]
func (h *handler) Query(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processQueryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.FetchTasks(ctx, h.scope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.FetchTasks: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newQueryResp(output))
}

// Sync godoc
// @Summary     Sync a document
// @Description Runs the full pipeline — fetch, filter, attachment resolution, rendering — and optionally writes the rendered markdown into a vault document.
// @Tags        Dida
// @Accept      json
// @Produce     json
// @Param       body body syncReq true "Filter criteria plus optional target document"
// @Success     200 {object} syncResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Sign-on rejected"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/dida/sync [POST]
func (h *handler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSyncReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.SyncDocument(ctx, h.scope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SyncDocument: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newSyncResp(output))
}

func (h *handler) scope(c *gin.Context) model.Scope {
	return model.Scope{RunID: c.GetString(middleware.RequestIDKey)}
}
