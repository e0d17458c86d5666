package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mewzone/mewzone/internal/domain/entity"
)

// ProductFilter narrows public product queries. Zero values mean "no
// constraint". Breeds entries may be breed ids or breed names; either
// matches.
type ProductFilter struct {
	Name     string
	Breeds   []string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Genders  []entity.Gender
	Colors   []string
	Limit    int
	Offset   int
}

// FacetCount is one sidebar count bucket (per color, breed or gender).
type FacetCount struct {
	Key   string
	Label string
	Count int
}

// ProductFacets are the browse sidebar aggregates over approved products.
type ProductFacets struct {
	Colors  []FacetCount
	Breeds  []FacetCount
	Genders []FacetCount
}

// ProductRepository persists products and their media. All list/get methods
// that serve the public catalog filter on is_approved and carry the
// approved-review rating aggregate.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product, images []entity.ListingImage, videos []entity.ListingVideo, categoryIDs []string) error
	// GetByID returns the product regardless of approval (seller/admin use).
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetApproved returns the approved product with media, or ErrNotFound.
	GetApproved(ctx context.Context, id string) (*entity.Product, error)
	ListApproved(ctx context.Context, f ProductFilter) ([]entity.Product, error)
	// BestSellers orders by rating desc, review count desc, recency desc.
	BestSellers(ctx context.Context, limit int) ([]entity.Product, error)
	ListApprovedByShop(ctx context.Context, shopID string) ([]entity.Product, error)
	Facets(ctx context.Context) (*ProductFacets, error)
	// SetPrimaryImage atomically clears the previous primary and marks
	// imageID, leaving exactly one primary image for the product.
	SetPrimaryImage(ctx context.Context, productID, imageID string) error
	CountApproved(ctx context.Context) (int, error)
}

// MateRepository persists mate listings and their media.
type MateRepository interface {
	Create(ctx context.Context, m *entity.Mate, images []entity.ListingImage, videos []entity.ListingVideo) error
	GetByID(ctx context.Context, id string) (*entity.Mate, error)
	GetApproved(ctx context.Context, id string) (*entity.Mate, error)
	ListApproved(ctx context.Context) ([]entity.Mate, error)
	SetPrimaryImage(ctx context.Context, mateID, imageID string) error
	CountApproved(ctx context.Context) (int, error)
}
