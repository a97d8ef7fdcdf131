package handlers

import (
	"errors"
	"net/http"

	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps domain errors onto status codes so handlers do
// not repeat the same switch.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case store.NotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrOrderMismatch),
		errors.Is(err, service.ErrReplyDepth),
		errors.Is(err, service.ErrInvalidContent):
		RespondError(c, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrCommentForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, service.ErrCourseNotPublished):
		RespondError(c, http.StatusNotFound, "not_published", err)
	default:
		// internal detail stays in the log, never in the response body
		logrus.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}
