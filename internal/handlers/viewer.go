package handlers

import (
	"net/http"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/session"
	"github.com/gin-gonic/gin"
)

type ViewerHandler struct {
	viewer *service.ViewerService
	secure bool
}

func NewViewerHandler(viewer *service.ViewerService, secure bool) *ViewerHandler {
	return &ViewerHandler{
		viewer: viewer,
		secure: secure,
	}
}

// sessionID reads the anonymous viewer cookie, minting one on first touch.
func (h *ViewerHandler) sessionID(c *gin.Context) string {
	return session.ViewerID(c.Writer, c.Request, h.secure)
}

func (h *ViewerHandler) GetLike(c *gin.Context) {
	status, err := h.viewer.GetLike(c.Request.Context(), c.Param("pageId"), h.sessionID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, status)
}

func (h *ViewerHandler) Like(c *gin.Context) {
	status, err := h.viewer.Like(c.Request.Context(), c.Param("pageId"), h.sessionID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, status)
}

func (h *ViewerHandler) Unlike(c *gin.Context) {
	status, err := h.viewer.Unlike(c.Request.Context(), c.Param("pageId"), h.sessionID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, status)
}

func (h *ViewerHandler) GetProgress(c *gin.Context) {
	progress, err := h.viewer.GetProgress(c.Request.Context(), c.Param("courseId"), h.sessionID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, progress)
}

type completePageRequest struct {
	PageID string `json:"pageId" binding:"required"`
}

func (h *ViewerHandler) CompletePage(c *gin.Context) {
	var req completePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	progress, err := h.viewer.CompletePage(c.Request.Context(), c.Param("courseId"), h.sessionID(c), req.PageID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, progress)
}
