package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pena.web.id/penablog/pkg/apperror"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// GetViewerID retrieves the viewer ID if a session is present. A nil
// return means anonymous, which is valid for public read paths.
func GetViewerID(c *gin.Context) *uuid.UUID {
	id, err := GetUserID(c)
	if err != nil {
		return nil
	}
	return &id
}

// GetAdminID retrieves the authenticated admin ID from the context
func GetAdminID(c *gin.Context) (uuid.UUID, error) {
	adminIDStr, exists := c.Get("admin_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	adminID, err := uuid.Parse(adminIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return adminID, nil
}

// ResponseError standardized error response:
// {"status":"error","message":...,"logout":true?}
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors and mask their message
	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		message = "something went wrong"
	}

	body := gin.H{"status": "error", "message": message}
	// Invalid or expired credentials: tell the client to drop its session
	if code == http.StatusUnauthorized && errors.Is(err, apperror.ErrUnauthorized) {
		body["logout"] = true
	}

	c.JSON(code, body)
}
