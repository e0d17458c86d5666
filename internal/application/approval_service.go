package application

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
	"github.com/mewzone/mewzone/pkg/helpers"
)

// ApprovalService is the admin moderation surface. Every decision flips the
// subject's approval flag and appends to the audit log in one transaction;
// the log itself is append-only and read-only from here.
type ApprovalService struct {
	Approvals repo.ApprovalRepository
	Products  repo.ProductRepository
	Search    *ProductIndexer
	Cache     *redis.Client
	Logger    *logrus.Logger
}

func (s *ApprovalService) ApproveShop(ctx context.Context, adminID, shopID string) error {
	return s.mapNotFound(s.Approvals.SetShopApproval(ctx, shopID, adminID, true, ""))
}

func (s *ApprovalService) RejectShop(ctx context.Context, adminID, shopID, reason string) error {
	return s.mapNotFound(s.Approvals.SetShopApproval(ctx, shopID, adminID, false, reason))
}

// ApproveProduct also (re)indexes the product for search. Index failures are
// logged, never surfaced; the approval already committed.
func (s *ApprovalService) ApproveProduct(ctx context.Context, adminID, productID string) error {
	if err := s.mapNotFound(s.Approvals.SetProductApproval(ctx, productID, adminID, true, "")); err != nil {
		return err
	}
	p, err := s.Products.GetApproved(ctx, productID)
	if err == nil {
		_ = s.Search.IndexProduct(ctx, p)
	} else if s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", productID).Warn("reload after approval failed")
	}
	s.evictBrowseCache(ctx)
	return nil
}

// RejectProduct clears approval and drops the product from the search index.
func (s *ApprovalService) RejectProduct(ctx context.Context, adminID, productID, reason string) error {
	if err := s.mapNotFound(s.Approvals.SetProductApproval(ctx, productID, adminID, false, reason)); err != nil {
		return err
	}
	_ = s.Search.RemoveProduct(ctx, productID)
	s.evictBrowseCache(ctx)
	return nil
}

func (s *ApprovalService) ApproveMate(ctx context.Context, adminID, mateID string) error {
	return s.mapNotFound(s.Approvals.SetMateApproval(ctx, mateID, adminID, true, ""))
}

func (s *ApprovalService) RejectMate(ctx context.Context, adminID, mateID, reason string) error {
	return s.mapNotFound(s.Approvals.SetMateApproval(ctx, mateID, adminID, false, reason))
}

// Logs returns the newest audit entries.
func (s *ApprovalService) Logs(ctx context.Context, limit int) ([]entity.AdminApprovalLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Approvals.Logs(ctx, limit)
}

// evictBrowseCache drops the cached landing page so product decisions are
// visible immediately instead of after the cache TTL.
func (s *ApprovalService) evictBrowseCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Cache, browseCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("browse cache evict failed")
	}
}

func (s *ApprovalService) mapNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
