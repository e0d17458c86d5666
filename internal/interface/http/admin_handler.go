package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/application"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/response"
	"github.com/mewzone/mewzone/pkg/validation"
)

type AdminHandler struct {
	Svc    *application.ApprovalService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.ApprovalService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *AdminHandler) approve(c *gin.Context, do func(ctx *gin.Context, adminID, id string) error, msg string) {
	if err := do(c, c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

func (h *AdminHandler) reject(c *gin.Context, do func(ctx *gin.Context, adminID, id, reason string) error, msg string) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := do(c, c.GetString(middleware.CtxUserIDKey), c.Param("id"), req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

func (h *AdminHandler) ApproveShop(c *gin.Context) {
	h.approve(c, func(ctx *gin.Context, adminID, id string) error {
		return h.Svc.ApproveShop(ctx.Request.Context(), adminID, id)
	}, "shop approved")
}

func (h *AdminHandler) RejectShop(c *gin.Context) {
	h.reject(c, func(ctx *gin.Context, adminID, id, reason string) error {
		return h.Svc.RejectShop(ctx.Request.Context(), adminID, id, reason)
	}, "shop rejected")
}

func (h *AdminHandler) ApproveProduct(c *gin.Context) {
	h.approve(c, func(ctx *gin.Context, adminID, id string) error {
		return h.Svc.ApproveProduct(ctx.Request.Context(), adminID, id)
	}, "product approved")
}

func (h *AdminHandler) RejectProduct(c *gin.Context) {
	h.reject(c, func(ctx *gin.Context, adminID, id, reason string) error {
		return h.Svc.RejectProduct(ctx.Request.Context(), adminID, id, reason)
	}, "product rejected")
}

func (h *AdminHandler) ApproveMate(c *gin.Context) {
	h.approve(c, func(ctx *gin.Context, adminID, id string) error {
		return h.Svc.ApproveMate(ctx.Request.Context(), adminID, id)
	}, "mate approved")
}

func (h *AdminHandler) RejectMate(c *gin.Context) {
	h.reject(c, func(ctx *gin.Context, adminID, id, reason string) error {
		return h.Svc.RejectMate(ctx.Request.Context(), adminID, id, reason)
	}, "mate rejected")
}

func (h *AdminHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.Svc.Logs(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, logs, "approval logs", nil)
}
