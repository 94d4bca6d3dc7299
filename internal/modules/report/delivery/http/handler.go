package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportDto "pena.web.id/penablog/internal/modules/report/dto"
	report "pena.web.id/penablog/internal/modules/report/service"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/response"
	"pena.web.id/penablog/pkg/validator"
)

type ReportHandler struct {
	service report.ReportService
}

func NewReportHandler(service report.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req reportDto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": created})
}

// List is an admin dashboard endpoint.
func (h *ReportHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reports, total, err := h.service.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": reports, "pagination": response.NewPagination(total, page, limit)})
}

func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("reportId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid report id"))
		return
	}

	var req reportDto.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), reportID, req.Status)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": updated})
}
