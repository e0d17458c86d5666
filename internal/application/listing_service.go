package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".webm": true,
}

// ListingService handles seller product and mate submissions.
type ListingService struct {
	Shops    repo.ShopRepository
	Products repo.ProductRepository
	Mates    repo.MateRepository
	Taxonomy repo.TaxonomyRepository
	Files    Uploader
	Logger   *logrus.Logger

	MaxVideoBytes int64
}

type ProductInput struct {
	Name                 string
	BreedID              string
	Gender               entity.Gender
	Color                string
	EyeColor             string
	FurType              entity.FurType
	DateOfBirth          string // YYYY-MM-DD
	Location             string
	ReadyToGo            bool
	AvailableForPickup   bool
	AvailableForDelivery bool
	AdditionalNotes      string
	Price                string
	DiscountPercentage   int
	Description          string
	CategoryIDs          []string
}

type MateInput struct {
	Name        string
	BreedID     string
	Gender      entity.Gender
	Color       string
	AgeMonths   int
	MateCost    string
	Description string
}

// CreateProduct validates the whole submission at once and stores the listing
// unapproved. Media beyond the caps (3 images, 2 videos) is dropped with a
// warning; individually bad files are skipped the same way and never sink the
// submission. The first stored image becomes primary. Unknown or inactive
// category ids are silently skipped.
func (s *ListingService) CreateProduct(ctx context.Context, sellerID string, in ProductInput, images, videos []FileUpload) (*entity.Product, []string, error) {
	shop, err := s.Shops.GetBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, Validation("shop", "create a shop before listing")
		}
		return nil, nil, err
	}

	fe := fieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fe.add("name", "is required")
	}
	var breed *entity.Breed
	if in.BreedID == "" {
		fe.add("breed", "is required")
	} else if breed, err = s.Taxonomy.GetActiveBreed(ctx, in.BreedID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fe.add("breed", "unknown or inactive breed")
		} else {
			return nil, nil, err
		}
	}
	if !in.Gender.Valid() {
		fe.add("gender", "must be MALE or FEMALE")
	}
	if !in.FurType.Valid() {
		fe.add("fur_type", "must be one of: SHORT, LONG, MEDIUM, CURLY, WIRE")
	}
	dob, dErr := time.Parse("2006-01-02", in.DateOfBirth)
	if dErr != nil {
		fe.add("date_of_birth", "must be a valid date (YYYY-MM-DD)")
	}
	price, pErr := decimal.NewFromString(in.Price)
	if pErr != nil || price.IsNegative() {
		fe.add("price", "must be a non-negative amount")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		fe.add("discount_percentage", "must be between 0 and 100")
	}
	if strings.TrimSpace(in.Description) == "" {
		fe.add("description", "is required")
	}
	if err := fe.err(); err != nil {
		return nil, nil, err
	}

	imgs, vids, warnings := s.storeMedia(ctx, "products", shop.ID, images, videos,
		entity.MaxProductImages, entity.MaxProductVideos)

	categoryIDs, err := s.Taxonomy.FilterActiveCategoryIDs(ctx, in.CategoryIDs)
	if err != nil {
		return nil, nil, err
	}

	p := &entity.Product{
		ShopID:               shop.ID,
		Name:                 in.Name,
		BreedID:              breed.ID,
		BreedName:            breed.Name,
		Gender:               in.Gender,
		Color:                in.Color,
		EyeColor:             in.EyeColor,
		FurType:              in.FurType,
		DateOfBirth:          dob,
		Location:             in.Location,
		ReadyToGo:            in.ReadyToGo,
		AvailableForPickup:   in.AvailableForPickup,
		AvailableForDelivery: in.AvailableForDelivery,
		AdditionalNotes:      in.AdditionalNotes,
		Price:                price,
		DiscountPercentage:   in.DiscountPercentage,
		Description:          in.Description,
	}
	if err := s.Products.Create(ctx, p, imgs, vids, categoryIDs); err != nil {
		return nil, nil, err
	}
	return p, warnings, nil
}

// CreateMate is CreateProduct for mating listings: age in months and a mate
// cost instead of price/discount, caps of 5 images and 1 video.
func (s *ListingService) CreateMate(ctx context.Context, sellerID string, in MateInput, images, videos []FileUpload) (*entity.Mate, []string, error) {
	shop, err := s.Shops.GetBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, Validation("shop", "create a shop before listing")
		}
		return nil, nil, err
	}

	fe := fieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fe.add("name", "is required")
	}
	var breed *entity.Breed
	if in.BreedID == "" {
		fe.add("breed", "is required")
	} else if breed, err = s.Taxonomy.GetActiveBreed(ctx, in.BreedID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fe.add("breed", "unknown or inactive breed")
		} else {
			return nil, nil, err
		}
	}
	if !in.Gender.Valid() {
		fe.add("gender", "must be MALE or FEMALE")
	}
	if in.AgeMonths <= 0 {
		fe.add("age_months", "must be positive")
	}
	cost, cErr := decimal.NewFromString(in.MateCost)
	if cErr != nil || cost.IsNegative() {
		fe.add("mate_cost", "must be a non-negative amount")
	}
	if strings.TrimSpace(in.Description) == "" {
		fe.add("description", "is required")
	}
	if err := fe.err(); err != nil {
		return nil, nil, err
	}

	imgs, vids, warnings := s.storeMedia(ctx, "mates", shop.ID, images, videos,
		entity.MaxMateImages, entity.MaxMateVideos)

	m := &entity.Mate{
		ShopID:      shop.ID,
		Name:        in.Name,
		BreedID:     breed.ID,
		BreedName:   breed.Name,
		Gender:      in.Gender,
		Color:       in.Color,
		AgeMonths:   in.AgeMonths,
		MateCost:    cost,
		Description: in.Description,
	}
	if err := s.Mates.Create(ctx, m, imgs, vids); err != nil {
		return nil, nil, err
	}
	return m, warnings, nil
}

// SetProductPrimaryImage marks imageID primary on the seller's own product.
func (s *ListingService) SetProductPrimaryImage(ctx context.Context, sellerID, productID, imageID string) error {
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.ownsShop(ctx, sellerID, p.ShopID); err != nil {
		return err
	}
	if err := s.Products.SetPrimaryImage(ctx, productID, imageID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SetMatePrimaryImage marks imageID primary on the seller's own mate listing.
func (s *ListingService) SetMatePrimaryImage(ctx context.Context, sellerID, mateID, imageID string) error {
	m, err := s.Mates.GetByID(ctx, mateID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.ownsShop(ctx, sellerID, m.ShopID); err != nil {
		return err
	}
	if err := s.Mates.SetPrimaryImage(ctx, mateID, imageID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ListingService) ownsShop(ctx context.Context, sellerID, shopID string) error {
	shop, err := s.Shops.GetBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if shop.ID != shopID {
		return ErrForbidden
	}
	return nil
}

// storeMedia uploads images and videos, enforcing the per-listing caps and
// per-file type/size rules. Rejected or failed files become warnings, never
// errors. The first stored image is marked primary.
func (s *ListingService) storeMedia(ctx context.Context, prefix, shopID string, images, videos []FileUpload, maxImages, maxVideos int) ([]entity.ListingImage, []entity.ListingVideo, []string) {
	var warnings []string

	if len(images) > maxImages {
		warnings = append(warnings, fmt.Sprintf("only the first %d images were kept", maxImages))
		images = images[:maxImages]
	}
	if len(videos) > maxVideos {
		warnings = append(warnings, fmt.Sprintf("only the first %d videos were kept", maxVideos))
		videos = videos[:maxVideos]
	}

	var imgs []entity.ListingImage
	for _, f := range images {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if !imageExts[ext] {
			warnings = append(warnings, fmt.Sprintf("image %s: unsupported file type", f.Name))
			continue
		}
		url, err := s.upload(ctx, prefix, shopID, ext, f)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("image %s: could not store file", f.Name))
			continue
		}
		imgs = append(imgs, entity.ListingImage{URL: url, AltText: f.Name, IsPrimary: len(imgs) == 0})
	}

	var vids []entity.ListingVideo
	for _, f := range videos {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if !videoExts[ext] {
			warnings = append(warnings, fmt.Sprintf("video %s: unsupported file type", f.Name))
			continue
		}
		if s.MaxVideoBytes > 0 && f.Size > s.MaxVideoBytes {
			warnings = append(warnings, fmt.Sprintf("video %s: exceeds the %dMB limit", f.Name, s.MaxVideoBytes/(1<<20)))
			continue
		}
		url, err := s.upload(ctx, prefix, shopID, ext, f)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("video %s: could not store file", f.Name))
			continue
		}
		vids = append(vids, entity.ListingVideo{URL: url, FileSize: f.Size})
	}

	if len(warnings) > 0 && s.Logger != nil {
		s.Logger.WithField("shop_id", shopID).WithField("warnings", warnings).Warn("listing media partially rejected")
	}
	return imgs, vids, warnings
}

func (s *ListingService) upload(ctx context.Context, prefix, shopID, ext string, f FileUpload) (string, error) {
	objectPath := filepath.ToSlash(filepath.Join(prefix, shopID, uuid.NewString()+ext))
	return s.Files.Upload(ctx, objectPath, f.ContentType, f.Reader)
}
