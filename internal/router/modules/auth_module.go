package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mewzone/mewzone/internal/container"
	handlers "github.com/mewzone/mewzone/internal/interface/http"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/helpers"
)

// AuthModule wires registration, OTP verification, login and password reset.
// Public: POST /register, /verify-otp, /login, /refresh, /password-reset/*
// Protected: POST /logout, GET /profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	otpLimiter := middleware.RateLimit(rdb, 20, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/verify-otp", otpLimiter, m.Handler.VerifyOTP)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/password-reset/init", otpLimiter, m.Handler.PasswordResetInit)
	rg.POST("/password-reset/confirm", otpLimiter, m.Handler.PasswordResetConfirm)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
	}
}
