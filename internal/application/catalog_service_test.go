package application

import (
	"context"
	"errors"
	"testing"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
)

func newCatalogFixture() (*CatalogService, *stubProducts, *stubMates, *stubReviews) {
	products := newStubProducts()
	mates := newStubMates()
	reviews := newStubReviews()
	taxonomy := newStubTaxonomy()
	taxonomy.breeds["b1"] = &entity.Breed{ID: "b1", Name: "Persian"}
	taxonomy.categories["c1"] = true
	svc := &CatalogService{
		Products: products,
		Mates:    mates,
		Reviews:  reviews,
		Taxonomy: taxonomy,
		Search:   &ProductIndexer{}, // unconfigured: search is a no-op
	}
	return svc, products, mates, reviews
}

func TestBrowseStripSizes(t *testing.T) {
	svc, products, _, _ := newCatalogFixture()

	if _, err := svc.Browse(context.Background()); err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(products.listCalls) != 2 {
		t.Fatalf("ListApproved calls = %d, want 2", len(products.listCalls))
	}
	latest, coming := products.listCalls[0], products.listCalls[1]
	if latest.Limit != 12 || latest.Offset != 0 {
		t.Errorf("latest strip = limit %d offset %d, want 12/0", latest.Limit, latest.Offset)
	}
	if coming.Limit != 8 || coming.Offset != 12 {
		t.Errorf("newly-coming strip = limit %d offset %d, want 8/12", coming.Limit, coming.Offset)
	}
}

func TestFilterCapsPageSize(t *testing.T) {
	svc, products, _, _ := newCatalogFixture()

	_, err := svc.Filter(context.Background(), repo.ProductFilter{Name: "fluff", Limit: 1000})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if got := products.listCalls[0].Limit; got != 24 {
		t.Errorf("limit = %d, want 24", got)
	}

	_, _ = svc.Filter(context.Background(), repo.ProductFilter{Limit: 5})
	if got := products.listCalls[1].Limit; got != 5 {
		t.Errorf("explicit small limit = %d, want 5", got)
	}
}

func TestProductDetailApprovalGate(t *testing.T) {
	svc, products, _, reviews := newCatalogFixture()
	products.add(&entity.Product{ID: "p1", IsApproved: true})
	products.add(&entity.Product{ID: "p2", IsApproved: false})
	reviews.approved["PRODUCT:p1"] = []entity.Review{{ID: "r1", Rating: 5}}

	detail, err := svc.ProductDetail(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ProductDetail: %v", err)
	}
	if len(detail.Reviews) != 1 {
		t.Errorf("reviews = %d, want 1", len(detail.Reviews))
	}

	// a pending listing must be indistinguishable from a missing one
	_, errPending := svc.ProductDetail(context.Background(), "p2")
	_, errMissing := svc.ProductDetail(context.Background(), "ghost")
	if !errors.Is(errPending, ErrNotFound) || !errors.Is(errMissing, ErrNotFound) {
		t.Errorf("pending = %v, missing = %v; both must be ErrNotFound", errPending, errMissing)
	}
}

func TestMateDetailApprovalGate(t *testing.T) {
	svc, _, mates, _ := newCatalogFixture()
	mates.add(&entity.Mate{ID: "m1", IsApproved: true})
	mates.add(&entity.Mate{ID: "m2", IsApproved: false})

	if _, err := svc.MateDetail(context.Background(), "m1"); err != nil {
		t.Fatalf("MateDetail: %v", err)
	}
	if _, err := svc.MateDetail(context.Background(), "m2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("pending mate err = %v, want ErrNotFound", err)
	}

	list, err := svc.MateList(context.Background())
	if err != nil {
		t.Fatalf("MateList: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("approved mates = %d, want 1", len(list))
	}
}

func TestSearchProductsWithoutES(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	hits, err := svc.SearchProducts(context.Background(), "fluff", 10)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %d, want 0 when ES is not configured", len(hits))
	}
}
