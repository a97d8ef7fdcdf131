package handlers

import (
	"encoding/json"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/gin-gonic/gin"
)

type VersionHandler struct {
	versions *service.VersionService
}

func NewVersionHandler(versions *service.VersionService) *VersionHandler {
	return &VersionHandler{
		versions: versions,
	}
}

func (h *VersionHandler) List(c *gin.Context) {
	versions, err := h.versions.ListVersions(c.Request.Context(), c.Param("pageId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, versions)
}

func (h *VersionHandler) Save(c *gin.Context) {
	version, err := h.versions.SaveVersion(c.Request.Context(), c.Param("pageId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"id": version.ID, "createdAt": version.CreatedAt})
}

func (h *VersionHandler) Get(c *gin.Context) {
	content, err := h.versions.GetVersionContent(c.Request.Context(), c.Param("pageId"), c.Param("versionId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"content": json.RawMessage(content)})
}

func (h *VersionHandler) Restore(c *gin.Context) {
	page, err := h.versions.Restore(c.Request.Context(), c.Param("pageId"), c.Param("versionId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *VersionHandler) Delete(c *gin.Context) {
	if err := h.versions.DeleteVersion(c.Request.Context(), c.Param("pageId"), c.Param("versionId")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
