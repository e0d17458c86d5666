package repository

import (
	"context"

	"github.com/mewzone/mewzone/internal/domain/entity"
)

// ApprovalRepository flips approval flags and records the decision in the
// append-only admin approval log. Flag update and log insert happen in one
// transaction. Approving stamps approved_at when it is not already set;
// un-approving (reject) clears approved_at and stamps rejected_at + reason.
type ApprovalRepository interface {
	SetShopApproval(ctx context.Context, shopID, adminID string, approve bool, reason string) error
	SetProductApproval(ctx context.Context, productID, adminID string, approve bool, reason string) error
	SetMateApproval(ctx context.Context, mateID, adminID string, approve bool, reason string) error
	Logs(ctx context.Context, limit int) ([]entity.AdminApprovalLog, error)
}
