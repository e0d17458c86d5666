package repository

import (
	"context"

	"github.com/mewzone/mewzone/internal/domain/entity"
)

// ReviewRepository persists reviews for all three subject kinds. Create
// returns ErrDuplicate when the (subject, user) pair already has a review.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	ListApproved(ctx context.Context, subject entity.ReviewSubject, subjectID string) ([]entity.Review, error)
}

// TaxonomyRepository reads category/breed reference data.
type TaxonomyRepository interface {
	ListActiveCategories(ctx context.Context) ([]entity.Category, error)
	ListActiveBreeds(ctx context.Context) ([]entity.Breed, error)
	// GetActiveBreed returns ErrNotFound for unknown or inactive breeds.
	GetActiveBreed(ctx context.Context, id string) (*entity.Breed, error)
	// FilterActiveCategoryIDs drops ids that are unknown or inactive.
	FilterActiveCategoryIDs(ctx context.Context, ids []string) ([]string, error)
}
