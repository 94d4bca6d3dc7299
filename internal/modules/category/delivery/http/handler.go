package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	categoryDto "pena.web.id/penablog/internal/modules/category/dto"
	category "pena.web.id/penablog/internal/modules/category/service"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/response"
	"pena.web.id/penablog/pkg/validator"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(service category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryDto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": created})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid category id"))
		return
	}

	var req categoryDto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": updated})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid category id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
