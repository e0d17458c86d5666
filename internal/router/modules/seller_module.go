package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mewzone/mewzone/internal/container"
	"github.com/mewzone/mewzone/internal/domain/entity"
	handlers "github.com/mewzone/mewzone/internal/interface/http"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/helpers"
)

// SellerModule wires the seller-only surface: storefront management and
// product/mate submissions.
type SellerModule struct {
	Shops    *handlers.ShopHandler
	Listings *handlers.ListingHandler
	JWT      *helpers.JWTManager
}

func NewSellerModule(shops *handlers.ShopHandler, listings *handlers.ListingHandler, jwt *helpers.JWTManager) *SellerModule {
	return &SellerModule{Shops: shops, Listings: listings, JWT: jwt}
}

func (m *SellerModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	seller := rg.Group("/")
	seller.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RequireRole(string(entity.RoleSeller)),
		middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		seller.POST("/shops", m.Shops.Create)
		seller.GET("/shops/me", m.Shops.MyShop)
		seller.PUT("/shops/me", m.Shops.Update)

		seller.POST("/products", m.Listings.CreateProduct)
		seller.POST("/mates", m.Listings.CreateMate)
		seller.PUT("/products/:id/images/:imageID/primary", m.Listings.SetProductPrimaryImage)
		seller.PUT("/mates/:id/images/:imageID/primary", m.Listings.SetMatePrimaryImage)
	}
}
