package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postDto "pena.web.id/penablog/internal/modules/post/dto"
	post "pena.web.id/penablog/internal/modules/post/service"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/editor"
	"pena.web.id/penablog/pkg/response"
	"pena.web.id/penablog/pkg/validator"
)

type PostHandler struct {
	service post.PostService
}

func NewPostHandler(service post.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func parsePostID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return uuid.Nil, apperror.BadRequest("invalid post id")
	}
	return id, nil
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req postDto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": resp})
}

func (h *PostHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req postDto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.UpdatePost(c.Request.Context(), userID, postID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": resp})
}

func (h *PostHandler) RemoveCoverImage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.RemoveCoverImage(c.Request.Context(), userID, postID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cover image removed"})
}

func (h *PostHandler) SaveContent(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var body struct {
		Content json.RawMessage `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	doc, err := editor.Parse(body.Content)
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("malformed editor document"))
		return
	}

	if err := h.service.SaveContent(c.Request.Context(), userID, postID, doc); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "content saved"})
}

func (h *PostHandler) GetForEditing(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.GetForEditing(c.Request.Context(), userID, postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": resp})
}

func (h *PostHandler) GetBySlug(c *gin.Context) {
	viewer := response.GetViewerID(c)

	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), viewer)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": resp})
}

func (h *PostHandler) GetAuthorView(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.GetAuthorView(c.Request.Context(), c.Param("slug"), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": resp})
}

func (h *PostHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	posts, err := h.service.ListMyPosts(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) TogglePublish(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	published, err := h.service.TogglePublish(c.Request.Context(), userID, postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"published": published})
}

func (h *PostHandler) ToggleTrash(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	trashed, err := h.service.ToggleTrash(c.Request.Context(), userID, postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_deleted": trashed})
}

func (h *PostHandler) PermanentDelete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.PermanentDelete(c.Request.Context(), userID, postID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// IncrementViews counts a view explicitly so GET stays side-effect free.
// Anonymous viewers dedupe on client IP, sessions on user ID.
func (h *PostHandler) IncrementViews(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	viewerKey := c.ClientIP()
	if viewer := response.GetViewerID(c); viewer != nil {
		viewerKey = viewer.String()
	}

	if err := h.service.IncrementViews(c.Request.Context(), postID, viewerKey); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "view counted"})
}

func (h *PostHandler) UploadImage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req postDto.UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	upload, err := h.service.UploadContentImage(c.Request.Context(), userID, req.ImageBase64)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": upload.URL})
}
