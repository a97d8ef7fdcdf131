package handlers

import (
	"fmt"
	"net/http"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{
		comments: comments,
	}
}

func (h *CommentHandler) List(c *gin.Context) {
	pageID := c.Query("pageId")
	if pageID == "" {
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("pageId is required"))
		return
	}

	comments, err := h.comments.ListComments(c.Request.Context(), pageID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, comments)
}

type createCommentRequest struct {
	PageID   string  `json:"pageId" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), req.PageID, c.GetString(ContextUserID), req.Content, req.ParentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, comment)
}

type updateCommentRequest struct {
	Content  *string `json:"content"`
	Resolved *bool   `json:"resolved"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	comment, err := h.comments.UpdateComment(c.Request.Context(), c.Param("commentId"), c.GetString(ContextUserID), req.Content, req.Resolved)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.comments.DeleteComment(c.Request.Context(), c.Param("commentId"), c.GetString(ContextUserID)); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// ViewerList serves comments to anonymous viewers.
func (h *CommentHandler) ViewerList(c *gin.Context) {
	h.List(c)
}

type guestCommentRequest struct {
	PageID  string `json:"pageId" binding:"required"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required"`
}

// ViewerCreate posts an anonymous comment under the shared guest account.
func (h *CommentHandler) ViewerCreate(c *gin.Context) {
	var req guestCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	comment, err := h.comments.CreateGuestComment(c.Request.Context(), req.PageID, req.Author, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, comment)
}
