package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	feed "pena.web.id/penablog/internal/modules/feed/service"
	"pena.web.id/penablog/pkg/response"
)

type FeedHandler struct {
	service feed.FeedService
}

func NewFeedHandler(service feed.FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) PublicFeed(c *gin.Context) {
	resp, err := h.service.PublicFeed(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) PrivateFeed(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.PrivateFeed(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) Explore(c *gin.Context) {
	viewer := response.GetViewerID(c)

	resp, err := h.service.Explore(c.Request.Context(), viewer, c.Query("q"), c.Query("sort"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
