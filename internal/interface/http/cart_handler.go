package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/application"
	"github.com/mewzone/mewzone/pkg/helpers"
	"github.com/mewzone/mewzone/pkg/response"
)

type CartHandler struct {
	Svc     *application.CartService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger, cookies *helpers.Manager) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

// cartID returns the cart id cookie, minting one when absent.
func (h *CartHandler) cartID(c *gin.Context) string {
	if id := h.Cookies.CartID(c); id != "" {
		return id
	}
	id := uuid.NewString()
	h.Cookies.SetCartID(c, id)
	return id
}

// Add handles GET /cart/add/:id?qty=n.
func (h *CartHandler) Add(c *gin.Context) {
	qty, err := strconv.ParseInt(c.DefaultQuery("qty", "1"), 10, 64)
	if err != nil {
		qty = 1
	}
	cartID := h.cartID(c)
	if err := h.Svc.Add(c.Request.Context(), cartID, c.Param("id"), qty); err != nil {
		writeServiceError(c, err)
		return
	}
	cart, err := h.Svc.Get(c.Request.Context(), cartID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "added to cart", nil)
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.Svc.Get(c.Request.Context(), h.cartID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "cart", nil)
}

func (h *CartHandler) Checkout(c *gin.Context) {
	if err := h.Svc.Checkout(c.Request.Context(), h.cartID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "checkout complete, cart cleared", nil)
}
