package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/internal/domain/repository"
)

type ApprovalRepository struct {
	pool *pgxpool.Pool
}

func NewApprovalRepository(pool *pgxpool.Pool) *ApprovalRepository {
	return &ApprovalRepository{pool: pool}
}

// setApproval flips the flag on one approvable table and appends the audit
// log row in the same transaction. Approving stamps approved_at only when it
// is not already set; un-approving clears it and stamps rejected_at + reason.
func (r *ApprovalRepository) setApproval(ctx context.Context, table string, et entity.ApprovalEntity, id, adminID string, approve bool, reason string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var res interface{ RowsAffected() int64 }
	if approve {
		res, err = tx.Exec(ctx, `
			UPDATE `+table+`
			SET is_approved = TRUE,
			    approved_at = COALESCE(approved_at, now()),
			    updated_at = now()
			WHERE id = $1
		`, id)
	} else if table == "seller_shops" {
		// Shops carry no rejection metadata, only the flag and timestamp.
		res, err = tx.Exec(ctx, `
			UPDATE seller_shops
			SET is_approved = FALSE, approved_at = NULL, updated_at = now()
			WHERE id = $1
		`, id)
	} else {
		res, err = tx.Exec(ctx, `
			UPDATE `+table+`
			SET is_approved = FALSE,
			    approved_at = NULL,
			    rejected_at = now(),
			    rejection_reason = NULLIF($2, ''),
			    updated_at = now()
			WHERE id = $1
		`, id, reason)
	}
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	action := entity.ActionRejected
	if approve {
		action = entity.ActionApproved
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO admin_approval_logs (entity_type, entity_id, admin_user_id, action, reason)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
	`, et, id, adminID, action, reason); err != nil {
		return translate(err)
	}
	return translate(tx.Commit(ctx))
}

func (r *ApprovalRepository) SetShopApproval(ctx context.Context, shopID, adminID string, approve bool, reason string) error {
	return r.setApproval(ctx, "seller_shops", entity.ApprovalEntityShop, shopID, adminID, approve, reason)
}

func (r *ApprovalRepository) SetProductApproval(ctx context.Context, productID, adminID string, approve bool, reason string) error {
	return r.setApproval(ctx, "products", entity.ApprovalEntityProduct, productID, adminID, approve, reason)
}

func (r *ApprovalRepository) SetMateApproval(ctx context.Context, mateID, adminID string, approve bool, reason string) error {
	return r.setApproval(ctx, "mates", entity.ApprovalEntityMate, mateID, adminID, approve, reason)
}

func (r *ApprovalRepository) Logs(ctx context.Context, limit int) ([]entity.AdminApprovalLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.entity_type, l.entity_id, l.admin_user_id, u.email, l.action,
		       COALESCE(l.reason, ''), l.created_at
		FROM admin_approval_logs l
		JOIN users u ON u.id = l.admin_user_id
		ORDER BY l.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []entity.AdminApprovalLog
	for rows.Next() {
		var l entity.AdminApprovalLog
		if err := rows.Scan(&l.ID, &l.EntityType, &l.EntityID, &l.AdminUserID, &l.AdminEmail,
			&l.Action, &l.Reason, &l.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, l)
	}
	return out, translate(rows.Err())
}

var _ repository.ApprovalRepository = (*ApprovalRepository)(nil)
