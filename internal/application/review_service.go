package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
)

// ReviewService accepts reviews against approved products, shops and mates.
// New reviews are held for moderation and stay invisible until approved.
type ReviewService struct {
	Reviews  repo.ReviewRepository
	Products repo.ProductRepository
	Shops    repo.ShopRepository
	Mates    repo.MateRepository
	Logger   *logrus.Logger
}

// Add records one review. The subject must exist and be approved; a second
// review by the same user on the same subject is rejected.
func (s *ReviewService) Add(ctx context.Context, userID string, subject entity.ReviewSubject, subjectID string, rating int, comment string) (*entity.Review, error) {
	fe := fieldErrors{}
	if rating < 1 || rating > 5 {
		fe.add("rating", "must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		fe.add("comment", "is required")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	if err := s.subjectApproved(ctx, subject, subjectID); err != nil {
		return nil, err
	}

	r := &entity.Review{
		Subject:   subject,
		SubjectID: subjectID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, Validation("review", "you have already reviewed this")
		}
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) subjectApproved(ctx context.Context, subject entity.ReviewSubject, subjectID string) error {
	var err error
	switch subject {
	case entity.ReviewOfProduct:
		_, err = s.Products.GetApproved(ctx, subjectID)
	case entity.ReviewOfShop:
		_, err = s.Shops.GetApproved(ctx, subjectID)
	case entity.ReviewOfMate:
		_, err = s.Mates.GetApproved(ctx, subjectID)
	default:
		return ErrNotFound
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
