package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/application"
	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/internal/interface/middleware"
	"github.com/mewzone/mewzone/pkg/helpers"
	"github.com/mewzone/mewzone/pkg/response"
	"github.com/mewzone/mewzone/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
	RegTTL  time.Duration
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookies *helpers.Manager, regTTL time.Duration) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies, RegTTL: regTTL}
}

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone"`
	Role            string `json:"role" binding:"required,oneof=NORMAL SELLER"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Role:            entity.Role(req.Role),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	body := gin.H{"id": res.User.ID, "email": res.User.Email, "role": res.User.Role}
	if res.RegistrationSessionID != "" {
		h.Cookies.SetRegistrationSession(c, res.RegistrationSessionID, h.RegTTL)
		response.Success(c, http.StatusCreated, body, "registration received; check your email for the verification code", nil)
		return
	}
	response.Success(c, http.StatusCreated, body, "registration successful, you can log in", nil)
}

type verifyOTPRequest struct {
	OTPCode string `json:"otp_code" binding:"required,len=6"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sid := h.Cookies.RegistrationSession(c)
	u, pair, err := h.Svc.VerifyOTP(c.Request.Context(), sid, req.OTPCode)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.Cookies.ClearRegistrationSession(c)
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"id": u.ID, "email": u.Email, "verified": u.IsVerified}, "email verified", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.FullName(),
		"role":  u.Role,
	}, "login successful", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

type passwordResetInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) PasswordResetInit(c *gin.Context) {
	var req passwordResetInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "if the email exists, a reset code has been sent", nil)
}

type passwordResetConfirmRequest struct {
	OTPCode     string `json:"otp_code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func (h *AuthHandler) PasswordResetConfirm(c *gin.Context) {
	var req passwordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ConfirmPasswordReset(c.Request.Context(), req.OTPCode, req.NewPassword); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password updated, you can log in", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, shop, err := h.Svc.Profile(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	body := gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"phone":       u.Phone,
		"role":        u.Role,
		"is_verified": u.IsVerified,
		"created_at":  u.CreatedAt,
	}
	if shop != nil {
		body["shop"] = shop
	}
	response.Success(c, http.StatusOK, body, "profile", nil)
}
