package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
	"github.com/mewzone/mewzone/pkg/helpers"
)

const (
	browseLatest      = 12
	browseBestSellers = 8
	browseNewlyComing = 8
	filterPageSize    = 24

	browseCacheKey = "catalog:browse"
	browseCacheTTL = time.Minute
)

// CatalogService serves the public product and mate catalog. Everything here
// reads approved rows only; pending listings are indistinguishable from
// missing ones.
type CatalogService struct {
	Products repo.ProductRepository
	Mates    repo.MateRepository
	Reviews  repo.ReviewRepository
	Taxonomy repo.TaxonomyRepository
	Search   *ProductIndexer
	Cache    *redis.Client
	Logger   *logrus.Logger
}

// BrowsePage is the landing-page payload: three product strips, the filter
// sidebar facets and the reference data the filter form needs.
type BrowsePage struct {
	Latest      []entity.Product
	BestSellers []entity.Product
	NewlyComing []entity.Product
	Facets      *repo.ProductFacets
	Categories  []entity.Category
	Breeds      []entity.Breed
}

// Browse builds the landing page: the 12 newest approved products, the 8
// best sellers by approved-review rating, and the next 8 after the latest
// strip as "newly coming". The page is cached in redis for a minute; the
// approval flow evicts it so freshly approved products show up right away.
func (s *CatalogService) Browse(ctx context.Context) (*BrowsePage, error) {
	if s.Cache != nil {
		var page BrowsePage
		hit, err := helpers.RedisGetJSON(ctx, s.Cache, browseCacheKey, &page)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("browse cache read failed")
		}
		if hit {
			return &page, nil
		}
	}

	latest, err := s.Products.ListApproved(ctx, repo.ProductFilter{Limit: browseLatest})
	if err != nil {
		return nil, err
	}
	best, err := s.Products.BestSellers(ctx, browseBestSellers)
	if err != nil {
		return nil, err
	}
	coming, err := s.Products.ListApproved(ctx, repo.ProductFilter{Limit: browseNewlyComing, Offset: browseLatest})
	if err != nil {
		return nil, err
	}
	facets, err := s.Products.Facets(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Taxonomy.ListActiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	breeds, err := s.Taxonomy.ListActiveBreeds(ctx)
	if err != nil {
		return nil, err
	}
	page := &BrowsePage{
		Latest:      latest,
		BestSellers: best,
		NewlyComing: coming,
		Facets:      facets,
		Categories:  categories,
		Breeds:      breeds,
	}
	if s.Cache != nil {
		if err := helpers.RedisSetJSON(ctx, s.Cache, browseCacheKey, page, browseCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("browse cache write failed")
		}
	}
	return page, nil
}

// Filter lists approved products matching f, newest first, capped at 24.
func (s *CatalogService) Filter(ctx context.Context, f repo.ProductFilter) ([]entity.Product, error) {
	if f.Limit <= 0 || f.Limit > filterPageSize {
		f.Limit = filterPageSize
	}
	return s.Products.ListApproved(ctx, f)
}

// ProductDetail is a product page: the listing with media plus its approved
// reviews.
type ProductDetail struct {
	Product *entity.Product
	Reviews []entity.Review
}

func (s *CatalogService) ProductDetail(ctx context.Context, id string) (*ProductDetail, error) {
	p, err := s.Products.GetApproved(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	reviews, err := s.Reviews.ListApproved(ctx, entity.ReviewOfProduct, p.ID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: p, Reviews: reviews}, nil
}

type MateDetail struct {
	Mate    *entity.Mate
	Reviews []entity.Review
}

func (s *CatalogService) MateDetail(ctx context.Context, id string) (*MateDetail, error) {
	m, err := s.Mates.GetApproved(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	reviews, err := s.Reviews.ListApproved(ctx, entity.ReviewOfMate, m.ID)
	if err != nil {
		return nil, err
	}
	return &MateDetail{Mate: m, Reviews: reviews}, nil
}

func (s *CatalogService) MateList(ctx context.Context) ([]entity.Mate, error) {
	return s.Mates.ListApproved(ctx)
}

// SearchProducts queries the Elasticsearch index of approved products.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return s.Search.Search(ctx, q, size)
}
