package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profile "pena.web.id/penablog/internal/modules/profile/service"
	"pena.web.id/penablog/pkg/response"
)

type ProfileHandler struct {
	service profile.ProfileService
}

func NewProfileHandler(service profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	viewer := response.GetViewerID(c)

	view, err := h.service.GetByUsername(c.Request.Context(), c.Param("username"), viewer)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": view})
}
