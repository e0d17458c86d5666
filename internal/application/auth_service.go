package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
	"github.com/mewzone/mewzone/pkg/helpers"
	"github.com/mewzone/mewzone/pkg/mailer"
)

// AuthService owns registration, OTP verification, login and password reset.
type AuthService struct {
	Users  repo.UserRepository
	OTPs   repo.OTPRepository
	Shops  repo.ShopRepository
	Reg    RegistrationStore
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Pub    EmailEnqueuer
	Logger *logrus.Logger

	OTPTTL      time.Duration
	RegTTL      time.Duration
	MailEnabled bool
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string { return "user:session:" + userID }

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339Nano) }

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
	Role            entity.Role
}

// RegisterResult reports what the registration produced. For sellers,
// RegistrationSessionID identifies the pending-verification marker the client
// must present when submitting the OTP; for normal users it is empty and the
// account is usable immediately.
type RegisterResult struct {
	User                  *entity.User
	RegistrationSessionID string
}

// Register creates the account. Sellers stay unverified and receive a 6-digit
// code by email, valid for OTPTTL; normal users are verified on the spot.
// All validation failures are reported together. A failed email dispatch does
// not roll back the already-created user or OTP row; it surfaces as an error.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	fe := fieldErrors{}
	if in.Password != in.ConfirmPassword {
		fe.add("confirm_password", "passwords do not match")
	}
	if in.Phone == "" {
		fe.add("phone", "phone number is required")
	}
	if !in.Role.Valid() {
		fe.add("role", "must be NORMAL or SELLER")
	}
	if u, err := s.Users.GetByEmail(ctx, in.Email); err == nil && u != nil {
		fe.add("email", "email already exists")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:      in.Email,
		Password:   hash,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		Role:       in.Role,
		IsVerified: in.Role == entity.RoleNormal,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, Validation("email", "email already exists")
		}
		return nil, err
	}

	if u.Role != entity.RoleSeller {
		return &RegisterResult{User: u}, nil
	}

	otp, err := s.issueOTP(ctx, u, entity.VerificationRegistration)
	if err != nil {
		return nil, err
	}

	sid := uuid.NewString()
	if err := s.Reg.SetPendingRegistration(ctx, sid, u.Email, s.RegTTL); err != nil {
		return nil, err
	}

	if err := s.sendOTPEmail(ctx, u, otp, "otp_verification"); err != nil {
		// The OTP row stays valid; the caller learns dispatch failed.
		return nil, fmt.Errorf("send otp email: %w", err)
	}
	return &RegisterResult{User: u, RegistrationSessionID: sid}, nil
}

func (s *AuthService) issueOTP(ctx context.Context, u *entity.User, vt entity.VerificationType) (*entity.OTPVerification, error) {
	code, err := helpers.GenOTPCode()
	if err != nil {
		return nil, err
	}
	otp := &entity.OTPVerification{
		UserID:           u.ID,
		Email:            u.Email,
		OTPCode:          code,
		VerificationType: vt,
		ExpiresAt:        time.Now().Add(s.OTPTTL),
	}
	if err := s.OTPs.Create(ctx, otp); err != nil {
		return nil, err
	}
	return otp, nil
}

func (s *AuthService) sendOTPEmail(ctx context.Context, u *entity.User, otp *entity.OTPVerification, template string) error {
	if !s.MailEnabled || s.Pub == nil {
		if s.Logger != nil {
			s.Logger.WithField("email", u.Email).Warn("mail sending disabled; OTP not dispatched")
		}
		return nil
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: template,
		Data: map[string]any{
			"Name":           u.FullName(),
			"Code":           otp.OTPCode,
			"ExpiresMinutes": int(s.OTPTTL.Minutes()),
		},
	}
	return s.Pub.PublishJSON(ctx, job)
}

// VerifyOTP consumes a registration code. The pending-verification marker for
// sessionID must exist; without it the caller is sent back to registration.
// A wrong, used or expired code fails with ErrInvalidOTP and keeps the marker
// so the user may retry. On success the user is verified, the marker cleared,
// and an authenticated session established.
func (s *AuthService) VerifyOTP(ctx context.Context, sessionID, code string) (*entity.User, TokenPair, error) {
	email, err := s.Reg.PendingRegistration(ctx, sessionID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if email == "" {
		return nil, TokenPair{}, ErrSessionMissing
	}

	otp, err := s.OTPs.Consume(ctx, code, entity.VerificationRegistration)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidOTP
		}
		return nil, TokenPair{}, err
	}

	if err := s.Users.SetVerified(ctx, otp.UserID); err != nil {
		return nil, TokenPair{}, err
	}
	u, err := s.Users.GetByID(ctx, otp.UserID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if err := s.Reg.ClearPendingRegistration(ctx, sessionID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("clear pending registration failed")
	}

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Login authenticates by email and password. Unverified accounts cannot log
// in. There is no lockout or attempt counting.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, TokenPair{}, ErrEmailNotVerified
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.FullName(),
			"role":       string(u.Role),
			"is_staff":   u.IsStaff,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh validates the refresh token against the active session and rotates
// the token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the server-side session.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil && userID != "" {
		if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
		}
	}
}

// RequestPasswordReset issues a PASSWORD_RESET code for the address. Unknown
// emails are ignored silently so the endpoint never confirms account
// existence.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Debug("password reset for unknown email")
		}
		return nil
	}
	otp, err := s.issueOTP(ctx, u, entity.VerificationPasswordReset)
	if err != nil {
		return err
	}
	if err := s.sendOTPEmail(ctx, u, otp, "password_reset"); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ConfirmPasswordReset consumes a reset code and stores the new password hash.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	otp, err := s.OTPs.Consume(ctx, code, entity.VerificationPasswordReset)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, otp.UserID, hash)
}

// Profile returns the user and, for sellers, their shop (nil when none yet).
func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, *entity.SellerShop, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	var shop *entity.SellerShop
	if u.Role == entity.RoleSeller {
		shop, err = s.Shops.GetBySellerID(ctx, u.ID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, nil, err
		}
	}
	return u, shop, nil
}
