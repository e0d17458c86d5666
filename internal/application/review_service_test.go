package application

import (
	"context"
	"errors"
	"testing"

	"github.com/mewzone/mewzone/internal/domain/entity"
)

func newReviewFixture() (*ReviewService, *stubReviews) {
	reviews := newStubReviews()
	products := newStubProducts()
	products.add(&entity.Product{ID: "p1", IsApproved: true})
	products.add(&entity.Product{ID: "p2", IsApproved: false})
	shops := newStubShops()
	shops.add(&entity.SellerShop{ID: "shop-1", SellerID: "seller-1", IsApproved: true})
	mates := newStubMates()
	mates.add(&entity.Mate{ID: "m1", IsApproved: true})
	return &ReviewService{Reviews: reviews, Products: products, Shops: shops, Mates: mates}, reviews
}

func TestAddReview(t *testing.T) {
	svc, reviews := newReviewFixture()
	ctx := context.Background()

	r, err := svc.Add(ctx, "user-1", entity.ReviewOfProduct, "p1", 5, "Wonderful cat")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r.IsApproved {
		t.Error("new review must await moderation")
	}
	if len(reviews.created) != 1 {
		t.Fatalf("reviews created = %d", len(reviews.created))
	}

	// every approved subject kind accepts reviews
	if _, err := svc.Add(ctx, "user-1", entity.ReviewOfShop, "shop-1", 4, "Great breeder"); err != nil {
		t.Errorf("shop review: %v", err)
	}
	if _, err := svc.Add(ctx, "user-1", entity.ReviewOfMate, "m1", 3, "Okay"); err != nil {
		t.Errorf("mate review: %v", err)
	}
}

func TestAddReviewValidation(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		rating  int
		comment string
		fields  []string
	}{
		{"rating too low", 0, "text", []string{"rating"}},
		{"rating too high", 6, "text", []string{"rating"}},
		{"blank comment", 3, "  ", []string{"comment"}},
		{"both at once", 0, "", []string{"rating", "comment"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, "user-1", entity.ReviewOfProduct, "p1", tt.rating, tt.comment)
			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("want ValidationError, got %v", err)
			}
			for _, f := range tt.fields {
				if _, present := ve.Fields[f]; !present {
					t.Errorf("missing field %q in %v", f, ve.Fields)
				}
			}
		})
	}
}

func TestAddReviewSubjectMustBeApproved(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", entity.ReviewOfProduct, "p2", 4, "text"); !errors.Is(err, ErrNotFound) {
		t.Errorf("pending product err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Add(ctx, "user-1", entity.ReviewOfProduct, "ghost", 4, "text"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing product err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Add(ctx, "user-1", "PLANET", "p1", 4, "text"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown subject err = %v, want ErrNotFound", err)
	}
}

func TestAddReviewDuplicate(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", entity.ReviewOfProduct, "p1", 5, "first"); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.Add(ctx, "user-1", entity.ReviewOfProduct, "p1", 1, "changed my mind")
	if ve, ok := AsValidation(err); !ok || ve.Fields["review"] == "" {
		t.Errorf("duplicate err = %v, want review validation error", err)
	}
	// a different user may still review the same subject
	if _, err := svc.Add(ctx, "user-2", entity.ReviewOfProduct, "p1", 4, "fine"); err != nil {
		t.Errorf("second user: %v", err)
	}
}
