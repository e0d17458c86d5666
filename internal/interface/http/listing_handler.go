package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/application"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/response"
	"github.com/mewzone/mewzone/pkg/validation"
)

type ListingHandler struct {
	Svc    *application.ListingService
	Logger *logrus.Logger
}

func NewListingHandler(svc *application.ListingService, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger}
}

type productForm struct {
	Name                 string   `form:"name" binding:"required"`
	BreedID              string   `form:"breed_id" binding:"required"`
	Gender               string   `form:"gender" binding:"required"`
	Color                string   `form:"color"`
	EyeColor             string   `form:"eye_color"`
	FurType              string   `form:"fur_type" binding:"required"`
	DateOfBirth          string   `form:"date_of_birth" binding:"required"`
	Location             string   `form:"location"`
	ReadyToGo            bool     `form:"ready_to_go"`
	AvailableForPickup   bool     `form:"available_for_pickup"`
	AvailableForDelivery bool     `form:"available_for_delivery"`
	AdditionalNotes      string   `form:"additional_notes"`
	Price                string   `form:"price" binding:"required"`
	DiscountPercentage   int      `form:"discount_percentage"`
	Description          string   `form:"description" binding:"required"`
	CategoryIDs          []string `form:"category_ids"`
}

func (h *ListingHandler) CreateProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	mp, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	images, closeImages, err := formFiles(mp.File["images"])
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read uploaded images", nil)
		return
	}
	defer closeImages()
	videos, closeVideos, err := formFiles(mp.File["videos"])
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read uploaded videos", nil)
		return
	}
	defer closeVideos()

	in := application.ProductInput{
		Name:                 form.Name,
		BreedID:              form.BreedID,
		Gender:               entityGender(form.Gender),
		Color:                form.Color,
		EyeColor:             form.EyeColor,
		FurType:              entityFurType(form.FurType),
		DateOfBirth:          form.DateOfBirth,
		Location:             form.Location,
		ReadyToGo:            form.ReadyToGo,
		AvailableForPickup:   form.AvailableForPickup,
		AvailableForDelivery: form.AvailableForDelivery,
		AdditionalNotes:      form.AdditionalNotes,
		Price:                form.Price,
		DiscountPercentage:   form.DiscountPercentage,
		Description:          form.Description,
		CategoryIDs:          form.CategoryIDs,
	}
	p, warnings, err := h.Svc.CreateProduct(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), in, images, videos)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	var meta any
	if len(warnings) > 0 {
		meta = map[string]any{"warnings": warnings}
	}
	response.Success(c, http.StatusCreated, p, "product submitted, waiting for approval", meta)
}

type mateForm struct {
	Name        string `form:"name" binding:"required"`
	BreedID     string `form:"breed_id" binding:"required"`
	Gender      string `form:"gender" binding:"required"`
	Color       string `form:"color"`
	AgeMonths   int    `form:"age_months" binding:"required"`
	MateCost    string `form:"mate_cost" binding:"required"`
	Description string `form:"description" binding:"required"`
}

func (h *ListingHandler) CreateMate(c *gin.Context) {
	var form mateForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	mp, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	images, closeImages, err := formFiles(mp.File["images"])
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read uploaded images", nil)
		return
	}
	defer closeImages()
	videos, closeVideos, err := formFiles(mp.File["videos"])
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read uploaded videos", nil)
		return
	}
	defer closeVideos()

	in := application.MateInput{
		Name:        form.Name,
		BreedID:     form.BreedID,
		Gender:      entityGender(form.Gender),
		Color:       form.Color,
		AgeMonths:   form.AgeMonths,
		MateCost:    form.MateCost,
		Description: form.Description,
	}
	m, warnings, err := h.Svc.CreateMate(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), in, images, videos)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	var meta any
	if len(warnings) > 0 {
		meta = map[string]any{"warnings": warnings}
	}
	response.Success(c, http.StatusCreated, m, "mate listing submitted, waiting for approval", meta)
}

func (h *ListingHandler) SetProductPrimaryImage(c *gin.Context) {
	err := h.Svc.SetProductPrimaryImage(c.Request.Context(),
		c.GetString(middleware.CtxUserIDKey), c.Param("id"), c.Param("imageID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "primary image updated", nil)
}

func (h *ListingHandler) SetMatePrimaryImage(c *gin.Context) {
	err := h.Svc.SetMatePrimaryImage(c.Request.Context(),
		c.GetString(middleware.CtxUserIDKey), c.Param("id"), c.Param("imageID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "primary image updated", nil)
}
