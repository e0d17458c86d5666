package repository

import (
	"context"

	"github.com/mewzone/mewzone/internal/domain/entity"
)

// ShopSummary is a shop row augmented with its approved-review aggregate.
type ShopSummary struct {
	entity.SellerShop
	Rating  float64
	Reviews int
}

// ShopRepository defines seller shop persistence. Public reads only ever see
// approved shops; seller- and admin-facing reads see everything.
type ShopRepository interface {
	Create(ctx context.Context, s *entity.SellerShop) error
	GetByID(ctx context.Context, id string) (*entity.SellerShop, error)
	GetBySellerID(ctx context.Context, sellerID string) (*entity.SellerShop, error)
	GetApproved(ctx context.Context, id string) (*ShopSummary, error)
	ListApproved(ctx context.Context) ([]ShopSummary, error)
	Update(ctx context.Context, s *entity.SellerShop) error
}
