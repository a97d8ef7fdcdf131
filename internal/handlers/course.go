package handlers

import (
	"net/http"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courses *service.CourseService
}

func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{
		courses: courses,
	}
}

type courseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.ListCourses(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, courses)
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	course, err := h.courses.CreateCourse(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, course)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.GetCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	course, err := h.courses.UpdateCourse(c.Request.Context(), c.Param("courseId"), req.Title, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courses.DeleteCourse(c.Request.Context(), c.Param("courseId")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (h *CourseHandler) Publish(c *gin.Context) {
	publishedAt, err := h.courses.Publish(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"success":     true,
		"message":     "course published",
		"publishedAt": publishedAt,
	})
}

// ViewerList serves the viewer's course index: published courses only.
func (h *CourseHandler) ViewerList(c *gin.Context) {
	courses, err := h.courses.ListPublishedCourses(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, courses)
}

// ViewerGet serves the published snapshot of a course.
func (h *CourseHandler) ViewerGet(c *gin.Context) {
	course, err := h.courses.GetPublishedCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, course)
}
