package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	export *service.ExportService
}

func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{
		export: export,
	}
}

// Get serves GET /export?courseId=xxx&format=json|html|markdown|pdf as a
// file download named after the course.
func (h *ExportHandler) Get(c *gin.Context) {
	courseID := c.Query("courseId")
	if courseID == "" {
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("courseId is required"))
		return
	}

	ctx := c.Request.Context()

	switch c.DefaultQuery("format", "json") {
	case "json":
		course, data, err := h.export.JSON(ctx, courseID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		attach(c, course.Title+".json")
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)

	case "html":
		course, html, err := h.export.HTML(ctx, courseID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		attach(c, course.Title+".html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))

	case "markdown":
		course, md, err := h.export.Markdown(ctx, courseID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		attach(c, course.Title+".md")
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))

	case "pdf":
		course, pdf, err := h.export.PDF(ctx, courseID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		attach(c, course.Title+".pdf")
		c.Data(http.StatusOK, "application/pdf", pdf)

	default:
		RespondError(c, http.StatusBadRequest, "bad_request",
			fmt.Errorf("unsupported format, expected json, html, markdown or pdf"))
	}
}

func attach(c *gin.Context, filename string) {
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", url.PathEscape(filename)))
}
