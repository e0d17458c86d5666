package entity

import "time"

// ApprovalEntity is the closed set of approvable things. The audit log
// references its target as (entity type, id) rather than an open reference.
type ApprovalEntity string

const (
	ApprovalEntityShop    ApprovalEntity = "SHOP"
	ApprovalEntityProduct ApprovalEntity = "PRODUCT"
	ApprovalEntityMate    ApprovalEntity = "MATE"
)

// ApprovalAction is what the admin did.
type ApprovalAction string

const (
	ActionApproved ApprovalAction = "APPROVED"
	ActionRejected ApprovalAction = "REJECTED"
)

// AdminApprovalLog is one append-only record of an admin approve/reject
// decision. Rows are never updated or deleted.
type AdminApprovalLog struct {
	ID          string
	EntityType  ApprovalEntity
	EntityID    string
	AdminUserID string
	AdminEmail  string
	Action      ApprovalAction
	Reason      string
	CreatedAt   time.Time
}
