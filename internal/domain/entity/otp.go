package entity

import "time"

// VerificationType is the purpose an OTP code was issued for.
type VerificationType string

const (
	VerificationRegistration  VerificationType = "REGISTRATION"
	VerificationPasswordReset VerificationType = "PASSWORD_RESET"
)

// OTPVerification is a single-use, time-bounded email verification code.
// A code is consumable only while IsUsed is false and now < ExpiresAt;
// consumption flips IsUsed and the row is kept for audit, never deleted.
type OTPVerification struct {
	ID               string
	UserID           string
	Email            string
	OTPCode          string
	VerificationType VerificationType
	CreatedAt        time.Time
	ExpiresAt        time.Time
	IsUsed           bool
}

// Expired reports whether the code's validity window has passed.
func (o *OTPVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
