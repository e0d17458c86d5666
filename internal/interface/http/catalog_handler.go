package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/application"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
	"github.com/mewzone/mewzone/pkg/response"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func (h *CatalogHandler) Browse(c *gin.Context) {
	page, err := h.Svc.Browse(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "browse", nil)
}

// Filter reads the sidebar filter query params:
// ?name=&breed=a&breed=b&min_price=&max_price=&gender=MALE&color=White&page=1
func (h *CatalogHandler) Filter(c *gin.Context) {
	f := repo.ProductFilter{
		Name:   c.Query("name"),
		Breeds: c.QueryArray("breed"),
		Colors: c.QueryArray("color"),
	}
	for _, g := range c.QueryArray("gender") {
		f.Genders = append(f.Genders, entityGender(g))
	}
	if v := c.Query("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MinPrice = &d
		}
	}
	if v := c.Query("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = &d
		}
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 1 {
		f.Offset = (page - 1) * 24
	}

	products, err := h.Svc.Filter(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	detail, err := h.Svc.ProductDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail, "product", nil)
}

func (h *CatalogHandler) MateList(c *gin.Context) {
	mates, err := h.Svc.MateList(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mates, "mates", nil)
}

func (h *CatalogHandler) MateDetail(c *gin.Context) {
	detail, err := h.Svc.MateDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail, "mate", nil)
}
