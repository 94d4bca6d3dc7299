package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	like "pena.web.id/penablog/internal/modules/like/service"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/response"
)

type LikeHandler struct {
	service like.LikeService
}

func NewLikeHandler(service like.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) TogglePostLike(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid post id"))
		return
	}

	liked, err := h.service.TogglePostLike(c.Request.Context(), userID, postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid comment id"))
		return
	}

	liked, err := h.service.ToggleCommentLike(c.Request.Context(), userID, commentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
