package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	comment "pena.web.id/penablog/internal/modules/comment/service"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/response"
	"pena.web.id/penablog/pkg/validator"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentBody struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *CommentHandler) Create(c *gin.Context) {
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

	var body commentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, postID, body.Content)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": created})
}

func (h *CommentHandler) Update(c *gin.Context) {
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

	var body commentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), userID, commentID, body.Content)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": updated})
}

func (h *CommentHandler) Delete(c *gin.Context) {
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

	if err := h.service.Delete(c.Request.Context(), userID, commentID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
