package repository

import (
	"context"

	"github.com/mewzone/mewzone/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SetVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// OTPRepository stores and consumes one-time verification codes.
type OTPRepository interface {
	Create(ctx context.Context, v *entity.OTPVerification) error
	// Consume atomically marks the matching unused, unexpired code as used
	// and returns it. ErrNotFound means wrong, already-used or expired code.
	Consume(ctx context.Context, code string, vt entity.VerificationType) (*entity.OTPVerification, error)
}
