package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const apiKeyHeader = "X-API-Key"

// ExternalHandler is the key-authenticated integration surface for other
// systems pulling course content.
type ExternalHandler struct {
	courses *service.CourseService
	pages   *service.PageService
	store   store.Store
	apiKey  string
}

func NewExternalHandler(courses *service.CourseService, pages *service.PageService, store store.Store, apiKey string) *ExternalHandler {
	return &ExternalHandler{
		courses: courses,
		pages:   pages,
		store:   store,
		apiKey:  apiKey,
	}
}

// RequireKey gates the external routes on the shared API key. With no key
// configured the surface is disabled entirely.
func (h *ExternalHandler) RequireKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.apiKey == "" {
			logrus.Warn("EXTERNAL_API_KEY not configured")
			RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("external API is disabled"))
			c.Abort()
			return
		}
		if c.GetHeader(apiKeyHeader) != h.apiKey {
			RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid API key"))
			c.Abort()
			return
		}
		c.Next()
	}
}

type externalMeta struct {
	Total     *int      `json:"total,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type externalEnvelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data"`
	Meta    externalMeta `json:"meta"`
}

func respondExternal(c *gin.Context, data any, total *int) {
	c.JSON(http.StatusOK, externalEnvelope{
		Success: true,
		Data:    data,
		Meta: externalMeta{
			Total:     total,
			Timestamp: time.Now().UTC(),
		},
	})
}

type externalPageMeta struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type externalCurriculum struct {
	ID    string             `json:"id"`
	Title string             `json:"title"`
	Order int                `json:"order"`
	Pages []externalPageMeta `json:"pages"`
}

type externalCourse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     *string              `json:"description"`
	IsPublished     bool                 `json:"isPublished"`
	CurriculumCount int                  `json:"curriculumCount"`
	Curriculums     []externalCurriculum `json:"curriculums"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// ListCourses serves every course tree, pages stripped to metadata.
func (h *ExternalHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListCourses(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	out := make([]externalCourse, 0, len(courses))
	for _, course := range courses {
		tree, err := h.courses.GetCourse(c.Request.Context(), course.ID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}

		curriculums := make([]externalCurriculum, 0, len(tree.Curriculums))
		for _, cur := range tree.Curriculums {
			pages := make([]externalPageMeta, 0, len(cur.Pages))
			for _, page := range cur.Pages {
				pages = append(pages, externalPageMeta{
					ID:        page.ID,
					Title:     page.Title,
					Order:     page.Order,
					CreatedAt: page.CreatedAt,
					UpdatedAt: page.UpdatedAt,
				})
			}
			curriculums = append(curriculums, externalCurriculum{
				ID:    cur.ID,
				Title: cur.Title,
				Order: cur.Order,
				Pages: pages,
			})
		}

		out = append(out, externalCourse{
			ID:              tree.ID,
			Title:           tree.Title,
			Description:     tree.Description,
			IsPublished:     tree.IsPublished,
			CurriculumCount: len(curriculums),
			Curriculums:     curriculums,
			CreatedAt:       tree.CreatedAt,
			UpdatedAt:       tree.UpdatedAt,
		})
	}

	total := len(out)
	respondExternal(c, out, &total)
}

// GetCourse serves one course tree with full page content.
func (h *ExternalHandler) GetCourse(c *gin.Context) {
	course, err := h.courses.GetCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	respondExternal(c, course, nil)
}

// GetPage serves one page with its curriculum and course context.
func (h *ExternalHandler) GetPage(c *gin.Context) {
	ctx := c.Request.Context()

	page, err := h.pages.GetPage(ctx, c.Param("pageId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	curriculum, err := h.store.GetCurriculum(ctx, page.CurriculumID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	course, err := h.store.GetCourse(ctx, curriculum.CourseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	respondExternal(c, gin.H{
		"page": page,
		"curriculum": gin.H{
			"id":    curriculum.ID,
			"title": curriculum.Title,
		},
		"course": gin.H{
			"id":    course.ID,
			"title": course.Title,
		},
	}, nil)
}
