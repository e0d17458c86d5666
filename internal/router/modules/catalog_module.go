package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mewzone/mewzone/internal/container"
	handlers "github.com/mewzone/mewzone/internal/interface/http"
	"github.com/mewzone/mewzone/internal/interface/middleware"
)

// CatalogModule wires the public, unauthenticated catalog reads.
type CatalogModule struct {
	Catalog *handlers.CatalogHandler
	Shops   *handlers.ShopHandler
}

func NewCatalogModule(catalog *handlers.CatalogHandler, shops *handlers.ShopHandler) *CatalogModule {
	return &CatalogModule{Catalog: catalog, Shops: shops}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	pub := rg.Group("/")
	pub.Use(browseLimiter)
	{
		pub.GET("/browse", m.Catalog.Browse)
		pub.GET("/browse/filter", m.Catalog.Filter)
		pub.GET("/products/search", m.Catalog.Search)
		pub.GET("/products/:id", m.Catalog.ProductDetail)
		pub.GET("/mates", m.Catalog.MateList)
		pub.GET("/mates/:id", m.Catalog.MateDetail)
		pub.GET("/shops", m.Shops.List)
		pub.GET("/shops/:id", m.Shops.Get)
	}
}
