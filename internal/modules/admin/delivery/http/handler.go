package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adminDto "pena.web.id/penablog/internal/modules/admin/dto"
	admin "pena.web.id/penablog/internal/modules/admin/service"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/response"
	"pena.web.id/penablog/pkg/token"
	"pena.web.id/penablog/pkg/validator"
)

const sessionCookie = "token"

type AdminHandler struct {
	auth       admin.AdminAuthService
	admins     admin.AdminService
	moderation admin.ModerationService
	logs       admin.LogService
	fetch      admin.FetchService
}

func NewAdminHandler(
	auth admin.AdminAuthService,
	admins admin.AdminService,
	moderation admin.ModerationService,
	logs admin.LogService,
	fetch admin.FetchService,
) *AdminHandler {
	return &AdminHandler{auth: auth, admins: admins, moderation: moderation, logs: logs, fetch: fetch}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req adminDto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, signed, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.SetCookie(sessionCookie, signed, int(token.AdminTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"admin": resp})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AdminHandler) Me(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.admins.Me(c.Request.Context(), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": resp})
}

func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.admins.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

func (h *AdminHandler) Create(c *gin.Context) {
	actorID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req adminDto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	created, err := h.admins.Create(c.Request.Context(), actorID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"admin": created})
}

func (h *AdminHandler) Update(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req adminDto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	updated, err := h.admins.Update(c.Request.Context(), adminID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": updated})
}

func (h *AdminHandler) Delete(c *gin.Context) {
	actorID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	adminID, err := uuid.Parse(c.Param("adminId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid admin id"))
		return
	}

	if err := h.admins.SoftDelete(c.Request.Context(), actorID, adminID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "admin deleted"})
}

func (h *AdminHandler) moderate(c *gin.Context, param string, run func(ctx *gin.Context, actorID, targetID uuid.UUID) error, done string) {
	actorID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid id"))
		return
	}

	if err := run(c, actorID, targetID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": done})
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	h.moderate(c, "userId", func(ctx *gin.Context, actorID, targetID uuid.UUID) error {
		return h.moderation.SuspendUser(ctx.Request.Context(), actorID, targetID)
	}, "user suspended")
}

func (h *AdminHandler) UnsuspendUser(c *gin.Context) {
	h.moderate(c, "userId", func(ctx *gin.Context, actorID, targetID uuid.UUID) error {
		return h.moderation.UnsuspendUser(ctx.Request.Context(), actorID, targetID)
	}, "user unsuspended")
}

func (h *AdminHandler) SuspendPost(c *gin.Context) {
	h.moderate(c, "postId", func(ctx *gin.Context, actorID, targetID uuid.UUID) error {
		return h.moderation.SuspendPost(ctx.Request.Context(), actorID, targetID)
	}, "post suspended")
}

func (h *AdminHandler) UnsuspendPost(c *gin.Context) {
	h.moderate(c, "postId", func(ctx *gin.Context, actorID, targetID uuid.UUID) error {
		return h.moderation.UnsuspendPost(ctx.Request.Context(), actorID, targetID)
	}, "post restored")
}

func (h *AdminHandler) DeleteComment(c *gin.Context) {
	h.moderate(c, "commentId", func(ctx *gin.Context, actorID, targetID uuid.UUID) error {
		return h.moderation.DeleteComment(ctx.Request.Context(), actorID, targetID)
	}, "comment deleted")
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.fetch.Users(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": users, "pagination": response.NewPagination(total, page, limit)})
}

func (h *AdminHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, total, err := h.fetch.Posts(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": posts, "pagination": response.NewPagination(total, page, limit)})
}

func (h *AdminHandler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, total, err := h.logs.List(c.Request.Context(), page, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": logs, "pagination": response.NewPagination(total, page, limit)})
}

func (h *AdminHandler) GetLog(c *gin.Context) {
	logID, err := uuid.Parse(c.Param("logId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid log id"))
		return
	}

	log, err := h.logs.Get(c.Request.Context(), logID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": log})
}

func (h *AdminHandler) UpdateLog(c *gin.Context) {
	logID, err := uuid.Parse(c.Param("logId"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("invalid log id"))
		return
	}

	var req adminDto.UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	log, err := h.logs.UpdateDescription(c.Request.Context(), logID, req.Description)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": log})
}
