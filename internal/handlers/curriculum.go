package handlers

import (
	"net/http"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/gin-gonic/gin"
)

type CurriculumHandler struct {
	curriculums *service.CurriculumService
}

func NewCurriculumHandler(curriculums *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{
		curriculums: curriculums,
	}
}

type curriculumRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *CurriculumHandler) Create(c *gin.Context) {
	var req curriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	cur, err := h.curriculums.CreateCurriculum(c.Request.Context(), c.Param("courseId"), req.Title)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, cur)
}

func (h *CurriculumHandler) Get(c *gin.Context) {
	cur, err := h.curriculums.GetCurriculum(c.Request.Context(), c.Param("curriculumId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, cur)
}

func (h *CurriculumHandler) Update(c *gin.Context) {
	var req curriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	cur, err := h.curriculums.UpdateCurriculum(c.Request.Context(), c.Param("curriculumId"), req.Title)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, cur)
}

func (h *CurriculumHandler) Delete(c *gin.Context) {
	if err := h.curriculums.DeleteCurriculum(c.Request.Context(), c.Param("curriculumId")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

type reorderCurriculumsRequest struct {
	CurriculumIDs []string `json:"curriculumIds" binding:"required"`
}

func (h *CurriculumHandler) Reorder(c *gin.Context) {
	var req reorderCurriculumsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	if err := h.curriculums.Reorder(c.Request.Context(), c.Param("courseId"), req.CurriculumIDs); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (h *CurriculumHandler) Duplicate(c *gin.Context) {
	cur, err := h.curriculums.Duplicate(c.Request.Context(), c.Param("curriculumId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, cur)
}
