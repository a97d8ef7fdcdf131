package handlers

import (
	"errors"
	"net/http"

	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	auth  *service.AuthService
	store *sessions.CookieStore
}

func NewAuthHandler(auth *service.AuthService, store *sessions.CookieStore) *AuthHandler {
	return &AuthHandler{
		auth:  auth,
		store: store,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	if err := session.Login(h.store, c.Writer, c.Request, user.ID, user.Role); err != nil {
		logrus.Errorf("session save failed: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	RespondOK(c, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := session.Logout(h.store, c.Writer, c.Request); err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	RespondOK(c, gin.H{"userId": userID, "role": c.GetString(ContextUserRole)})
}

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// RequireAdmin gates the authoring routes on a logged-in admin session.
func (h *AuthHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role := session.UserID(h.store, c.Request)
		if userID == "" {
			RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("authentication required"))
			c.Abort()
			return
		}
		if role != model.RoleAdmin {
			RespondError(c, http.StatusForbidden, "forbidden", errors.New("admin access required"))
			c.Abort()
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}
