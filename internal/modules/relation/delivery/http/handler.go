package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	relation "pena.web.id/penablog/internal/modules/relation/service"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/response"
)

type RelationHandler struct {
	service relation.RelationService
}

func NewRelationHandler(service relation.RelationService) *RelationHandler {
	return &RelationHandler{service: service}
}

func (h *RelationHandler) ToggleSubscription(c *gin.Context) {
	subscriberID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	subscribedID, err := uuid.Parse(c.Param("subscribedId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid user id"))
		return
	}

	subscribed, err := h.service.ToggleSubscription(c.Request.Context(), subscriberID, subscribedID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "subscribed": subscribed})
}

func (h *RelationHandler) ToggleBlock(c *gin.Context) {
	blockerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	blockedID, err := uuid.Parse(c.Param("blockedId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid user id"))
		return
	}

	blocked, err := h.service.ToggleBlock(c.Request.Context(), blockerID, blockedID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "blocked": blocked})
}
