package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mewzone/mewzone/internal/container"
	handlers "github.com/mewzone/mewzone/internal/interface/http"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/helpers"
)

// CartModule wires the session cart and the review submission endpoints,
// both of which require a logged-in user.
type CartModule struct {
	Cart    *handlers.CartHandler
	Reviews *handlers.ReviewHandler
	JWT     *helpers.JWTManager
}

func NewCartModule(cart *handlers.CartHandler, reviews *handlers.ReviewHandler, jwt *helpers.JWTManager) *CartModule {
	return &CartModule{Cart: cart, Reviews: reviews, JWT: jwt}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/cart", m.Cart.Get)
		auth.GET("/cart/add/:id", m.Cart.Add)
		auth.POST("/checkout", m.Cart.Checkout)

		auth.POST("/products/:id/reviews", m.Reviews.AddProductReview)
		auth.POST("/shops/:id/reviews", m.Reviews.AddShopReview)
		auth.POST("/mates/:id/reviews", m.Reviews.AddMateReview)
	}
}
