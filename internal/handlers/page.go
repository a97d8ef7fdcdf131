package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pages *service.PageService
}

func NewPageHandler(pages *service.PageService) *PageHandler {
	return &PageHandler{
		pages: pages,
	}
}

type createPageRequest struct {
	Title   string          `json:"title" binding:"required"`
	Content json.RawMessage `json:"content"`
}

func (h *PageHandler) Create(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	page, err := h.pages.CreatePage(c.Request.Context(), c.Param("curriculumId"), req.Title, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, page)
}

func (h *PageHandler) Get(c *gin.Context) {
	page, err := h.pages.GetPage(c.Request.Context(), c.Param("pageId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

type updatePageRequest struct {
	Title       *string         `json:"title"`
	Content     json.RawMessage `json:"content"`
	Order       *int            `json:"order"`
	SaveVersion bool            `json:"saveVersion"`
}

func (h *PageHandler) Update(c *gin.Context) {
	var req updatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	page, err := h.pages.UpdatePage(c.Request.Context(), c.Param("pageId"), service.UpdatePageRequest{
		Title:       req.Title,
		Content:     req.Content,
		Order:       req.Order,
		SaveVersion: req.SaveVersion,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *PageHandler) Delete(c *gin.Context) {
	if err := h.pages.DeletePage(c.Request.Context(), c.Param("pageId")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

type reorderPagesRequest struct {
	PageIDs []string `json:"pageIds" binding:"required"`
}

func (h *PageHandler) Reorder(c *gin.Context) {
	var req reorderPagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	if err := h.pages.Reorder(c.Request.Context(), c.Param("curriculumId"), req.PageIDs); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

type movePageRequest struct {
	ToCurriculumID string `json:"toCurriculumId" binding:"required"`
}

func (h *PageHandler) Move(c *gin.Context) {
	var req movePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	page, err := h.pages.Move(c.Request.Context(), c.Param("pageId"), req.ToCurriculumID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *PageHandler) Duplicate(c *gin.Context) {
	page, err := h.pages.Duplicate(c.Request.Context(), c.Param("pageId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, page)
}
