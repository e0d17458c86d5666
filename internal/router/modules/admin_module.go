package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mewzone/mewzone/internal/container"
	handlers "github.com/mewzone/mewzone/internal/interface/http"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/helpers"
)

// AdminModule wires the staff-only moderation surface.
type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	admin := rg.Group("/admin")
	admin.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RequireStaff(),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		admin.POST("/shops/:id/approve", m.Handler.ApproveShop)
		admin.POST("/shops/:id/reject", m.Handler.RejectShop)
		admin.POST("/products/:id/approve", m.Handler.ApproveProduct)
		admin.POST("/products/:id/reject", m.Handler.RejectProduct)
		admin.POST("/mates/:id/approve", m.Handler.ApproveMate)
		admin.POST("/mates/:id/reject", m.Handler.RejectMate)
		admin.GET("/approval-logs", m.Handler.Logs)
	}
}
