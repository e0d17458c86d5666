package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/application"
	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/response"
	"github.com/mewzone/mewzone/pkg/validation"
)

type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,rating"`
	Comment string `json:"comment" binding:"required"`
}

func (h *ReviewHandler) add(c *gin.Context, subject entity.ReviewSubject) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Add(c.Request.Context(),
		c.GetString(middleware.CtxUserIDKey), subject, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r, "review submitted, waiting for moderation", nil)
}

func (h *ReviewHandler) AddProductReview(c *gin.Context) { h.add(c, entity.ReviewOfProduct) }

func (h *ReviewHandler) AddShopReview(c *gin.Context) { h.add(c, entity.ReviewOfShop) }

func (h *ReviewHandler) AddMateReview(c *gin.Context) { h.add(c, entity.ReviewOfMate) }
