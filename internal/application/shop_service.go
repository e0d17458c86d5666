package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
)

// ShopService handles the seller storefront lifecycle and public shop reads.
type ShopService struct {
	Shops    repo.ShopRepository
	Users    repo.UserRepository
	Products repo.ProductRepository
	Reviews  repo.ReviewRepository
	Files    Uploader
	Logger   *logrus.Logger
}

type ShopInput struct {
	ShopName        string
	Description     string
	Location        string
	Address         string
	City            string
	State           string
	Country         string
	PostalCode      string
	FacebookPage    string
	InstagramHandle string
	TwitterHandle   string
}

// Create opens a storefront for the seller. One shop per seller; a second
// attempt tells the caller to update the existing one. The shop starts
// unapproved and stays out of public listings until an admin approves it.
func (s *ShopService) Create(ctx context.Context, sellerID string, in ShopInput, picture *FileUpload) (*entity.SellerShop, error) {
	u, err := s.Users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if u.Role != entity.RoleSeller {
		return nil, ErrForbidden
	}

	fe := fieldErrors{}
	if strings.TrimSpace(in.ShopName) == "" {
		fe.add("shop_name", "is required")
	}
	if existing, gErr := s.Shops.GetBySellerID(ctx, sellerID); gErr == nil && existing != nil {
		fe.add("shop", "you already have a shop; update it instead")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	shop := &entity.SellerShop{SellerID: sellerID}
	applyShopInput(shop, in)
	if picture != nil {
		url, upErr := s.uploadPicture(ctx, sellerID, picture)
		if upErr != nil {
			return nil, Validation("profile_picture", "could not store file")
		}
		shop.ProfilePicture = url
	}

	if err := s.Shops.Create(ctx, shop); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, Validation("shop", "you already have a shop; update it instead")
		}
		return nil, err
	}
	return shop, nil
}

// Update replaces the seller's shop details. Allowed at any time and never
// touches the approval state.
func (s *ShopService) Update(ctx context.Context, sellerID string, in ShopInput, picture *FileUpload) (*entity.SellerShop, error) {
	shop, err := s.Shops.GetBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(in.ShopName) == "" {
		return nil, Validation("shop_name", "is required")
	}
	applyShopInput(shop, in)
	if picture != nil {
		url, upErr := s.uploadPicture(ctx, sellerID, picture)
		if upErr != nil {
			return nil, Validation("profile_picture", "could not store file")
		}
		shop.ProfilePicture = url
	}
	if err := s.Shops.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// MyShop returns the seller's shop regardless of approval.
func (s *ShopService) MyShop(ctx context.Context, sellerID string) (*entity.SellerShop, error) {
	shop, err := s.Shops.GetBySellerID(ctx, sellerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return shop, err
}

// List returns approved shops with their review aggregates.
func (s *ShopService) List(ctx context.Context) ([]repo.ShopSummary, error) {
	return s.Shops.ListApproved(ctx)
}

// ShopDetail is the public shop page: the shop, its approved products and
// its approved reviews.
type ShopDetail struct {
	Shop     repo.ShopSummary
	Products []entity.Product
	Reviews  []entity.Review
}

// Get returns the approved shop with its products and reviews. Pending shops
// are indistinguishable from missing ones.
func (s *ShopService) Get(ctx context.Context, id string) (*ShopDetail, error) {
	shop, err := s.Shops.GetApproved(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	products, err := s.Products.ListApprovedByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Reviews.ListApproved(ctx, entity.ReviewOfShop, shop.ID)
	if err != nil {
		return nil, err
	}
	return &ShopDetail{Shop: *shop, Products: products, Reviews: reviews}, nil
}

func (s *ShopService) uploadPicture(ctx context.Context, sellerID string, f *FileUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(f.Name))
	objectPath := filepath.ToSlash(filepath.Join("shops", sellerID, uuid.NewString()+ext))
	url, err := s.Files.Upload(ctx, objectPath, f.ContentType, f.Reader)
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("seller_id", sellerID).Warn("shop picture upload failed")
	}
	return url, err
}

func applyShopInput(shop *entity.SellerShop, in ShopInput) {
	shop.ShopName = in.ShopName
	shop.Description = in.Description
	shop.Location = in.Location
	shop.Address = in.Address
	shop.City = in.City
	shop.State = in.State
	shop.Country = in.Country
	shop.PostalCode = in.PostalCode
	shop.FacebookPage = in.FacebookPage
	shop.InstagramHandle = in.InstagramHandle
	shop.TwitterHandle = in.TwitterHandle
}
