package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/application"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/response"
	"github.com/mewzone/mewzone/pkg/validation"
)

type ShopHandler struct {
	Svc    *application.ShopService
	Logger *logrus.Logger
}

func NewShopHandler(svc *application.ShopService, logger *logrus.Logger) *ShopHandler {
	return &ShopHandler{Svc: svc, Logger: logger}
}

type shopForm struct {
	ShopName        string `form:"shop_name" binding:"required"`
	Description     string `form:"description"`
	Location        string `form:"location"`
	Address         string `form:"address"`
	City            string `form:"city"`
	State           string `form:"state"`
	Country         string `form:"country"`
	PostalCode      string `form:"postal_code"`
	FacebookPage    string `form:"facebook_page"`
	InstagramHandle string `form:"instagram_handle"`
	TwitterHandle   string `form:"twitter_handle"`
}

func (f shopForm) input() application.ShopInput {
	return application.ShopInput{
		ShopName:        f.ShopName,
		Description:     f.Description,
		Location:        f.Location,
		Address:         f.Address,
		City:            f.City,
		State:           f.State,
		Country:         f.Country,
		PostalCode:      f.PostalCode,
		FacebookPage:    f.FacebookPage,
		InstagramHandle: f.InstagramHandle,
		TwitterHandle:   f.TwitterHandle,
	}
}

// picture pulls the optional profile_picture file from the form.
func (h *ShopHandler) picture(c *gin.Context) (*application.FileUpload, func()) {
	fh, err := c.FormFile("profile_picture")
	if err != nil || fh == nil {
		return nil, func() {}
	}
	files, closeAll, err := formFiles([]*multipart.FileHeader{fh})
	if err != nil || len(files) == 0 {
		return nil, func() {}
	}
	return &files[0], closeAll
}

func (h *ShopHandler) Create(c *gin.Context) {
	var form shopForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pic, closePic := h.picture(c)
	defer closePic()

	shop, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), form.input(), pic)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, shop, "shop created, waiting for approval", nil)
}

func (h *ShopHandler) Update(c *gin.Context) {
	var form shopForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pic, closePic := h.picture(c)
	defer closePic()

	shop, err := h.Svc.Update(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), form.input(), pic)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, shop, "shop updated", nil)
}

func (h *ShopHandler) MyShop(c *gin.Context) {
	shop, err := h.Svc.MyShop(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, shop, "shop", nil)
}

func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, shops, "shops", nil)
}

func (h *ShopHandler) Get(c *gin.Context) {
	detail, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail, "shop", nil)
}
