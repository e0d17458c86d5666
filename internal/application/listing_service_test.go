package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
)

func newListingFixture() (*ListingService, *stubShops, *stubProducts, *stubMates, *stubUploader) {
	shops := newStubShops()
	shops.add(&entity.SellerShop{ID: "shop-1", SellerID: "seller-1", ShopName: "Whisker Works"})
	products := newStubProducts()
	mates := newStubMates()
	taxonomy := newStubTaxonomy()
	taxonomy.breeds["breed-1"] = &entity.Breed{ID: "breed-1", Name: "Maine Coon"}
	taxonomy.categories["cat-1"] = true
	uploader := &stubUploader{}
	svc := &ListingService{
		Shops:         shops,
		Products:      products,
		Mates:         mates,
		Taxonomy:      taxonomy,
		Files:         uploader,
		MaxVideoBytes: 100 << 20,
	}
	return svc, shops, products, mates, uploader
}

func validProductInput() ProductInput {
	return ProductInput{
		Name:               "Captain Fluff",
		BreedID:            "breed-1",
		Gender:             entity.GenderMale,
		Color:              "Silver",
		FurType:            entity.FurLong,
		DateOfBirth:        "2025-11-02",
		Price:              "450.00",
		DiscountPercentage: 10,
		Description:        "A very good cat.",
		CategoryIDs:        []string{"cat-1", "unknown-cat"},
	}
}

func TestCreateProduct(t *testing.T) {
	svc, _, products, _, _ := newListingFixture()

	imgs := []FileUpload{fileOf("a.jpg", "image/jpeg", 100), fileOf("b.png", "image/png", 100)}
	p, warnings, err := svc.CreateProduct(context.Background(), "seller-1", validProductInput(), imgs, nil)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.IsApproved {
		t.Error("new product must start unapproved")
	}
	if p.BreedName != "Maine Coon" {
		t.Errorf("breed name = %q", p.BreedName)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(products.lastImages) != 2 || !products.lastImages[0].IsPrimary || products.lastImages[1].IsPrimary {
		t.Errorf("first image should be the only primary: %+v", products.lastImages)
	}
	if len(products.lastCats) != 1 || products.lastCats[0] != "cat-1" {
		t.Errorf("inactive categories must be dropped silently, got %v", products.lastCats)
	}
}

func TestCreateProductWithoutShop(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	_, _, err := svc.CreateProduct(context.Background(), "stranger", validProductInput(), nil, nil)
	if ve, ok := AsValidation(err); !ok || ve.Fields["shop"] == "" {
		t.Fatalf("want shop validation error, got %v", err)
	}
}

func TestCreateProductCollectsAllErrors(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	in := ProductInput{
		Name:               "",
		BreedID:            "no-such-breed",
		Gender:             "NEITHER",
		FurType:            "SPIKY",
		DateOfBirth:        "last tuesday",
		Price:              "-3",
		DiscountPercentage: 150,
		Description:        "",
	}
	_, _, err := svc.CreateProduct(context.Background(), "seller-1", in, nil, nil)
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "breed", "gender", "fur_type", "date_of_birth", "price", "discount_percentage", "description"} {
		if _, present := ve.Fields[field]; !present {
			t.Errorf("missing field error for %q", field)
		}
	}
}

func TestCreateProductMediaCapsAndBadFiles(t *testing.T) {
	svc, _, products, _, _ := newListingFixture()

	imgs := []FileUpload{
		fileOf("1.jpg", "image/jpeg", 10),
		fileOf("2.jpg", "image/jpeg", 10),
		fileOf("3.jpg", "image/jpeg", 10),
		fileOf("4.jpg", "image/jpeg", 10), // over the cap of 3
	}
	vids := []FileUpload{
		fileOf("clip.exe", "application/octet-stream", 10), // bad type
		fileOf("big.mp4", "video/mp4", 200<<20),            // too large
	}
	_, warnings, err := svc.CreateProduct(context.Background(), "seller-1", validProductInput(), imgs, vids)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if len(products.lastImages) != 3 {
		t.Errorf("stored images = %d, want 3", len(products.lastImages))
	}
	if len(products.lastVideos) != 0 {
		t.Errorf("stored videos = %d, want 0", len(products.lastVideos))
	}
	if len(warnings) != 3 {
		t.Errorf("warnings = %v, want 3 (cap + type + size)", warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "kept") && !strings.Contains(w, "unsupported") && !strings.Contains(w, "limit") {
			t.Errorf("unexpected warning %q", w)
		}
	}
}

func TestCreateProductUploadFailureIsWarning(t *testing.T) {
	svc, _, products, _, uploader := newListingFixture()
	uploader.failAlway = true

	_, warnings, err := svc.CreateProduct(context.Background(), "seller-1", validProductInput(),
		[]FileUpload{fileOf("a.jpg", "image/jpeg", 10)}, nil)
	if err != nil {
		t.Fatalf("a broken store must not sink the submission: %v", err)
	}
	if len(products.lastImages) != 0 {
		t.Errorf("stored images = %d, want 0", len(products.lastImages))
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want 1", warnings)
	}
}

func TestCreateMateCaps(t *testing.T) {
	svc, _, _, mates, _ := newListingFixture()

	var imgs []FileUpload
	for i := 0; i < 7; i++ {
		imgs = append(imgs, fileOf("i.jpg", "image/jpeg", 10))
	}
	vids := []FileUpload{fileOf("a.mp4", "video/mp4", 10), fileOf("b.mp4", "video/mp4", 10)}
	in := MateInput{
		Name:        "Duchess",
		BreedID:     "breed-1",
		Gender:      entity.GenderFemale,
		AgeMonths:   18,
		MateCost:    "120.00",
		Description: "Champion bloodline.",
	}
	m, warnings, err := svc.CreateMate(context.Background(), "seller-1", in, imgs, vids)
	if err != nil {
		t.Fatalf("CreateMate: %v", err)
	}
	if m.IsApproved {
		t.Error("new mate listing must start unapproved")
	}
	if len(m.Images) != 5 {
		t.Errorf("stored images = %d, want 5", len(m.Images))
	}
	if len(m.Videos) != 1 {
		t.Errorf("stored videos = %d, want 1", len(m.Videos))
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want 2", warnings)
	}
	if len(mates.created) != 1 {
		t.Errorf("mates created = %d", len(mates.created))
	}
}

func TestSetProductPrimaryImageOwnership(t *testing.T) {
	svc, shops, products, _, _ := newListingFixture()
	shops.add(&entity.SellerShop{ID: "shop-2", SellerID: "seller-2"})
	products.add(&entity.Product{ID: "product-1", ShopID: "shop-1"})

	if err := svc.SetProductPrimaryImage(context.Background(), "seller-2", "product-1", "img-1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign seller err = %v, want ErrForbidden", err)
	}
	if err := svc.SetProductPrimaryImage(context.Background(), "seller-1", "missing", "img-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing product err = %v, want ErrNotFound", err)
	}
	if err := svc.SetProductPrimaryImage(context.Background(), "seller-1", "product-1", "img-1"); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if len(products.primarySet) != 1 || products.primarySet[0] != [2]string{"product-1", "img-1"} {
		t.Errorf("primarySet = %v", products.primarySet)
	}

	products.primaryErr = repo.ErrNotFound
	if err := svc.SetProductPrimaryImage(context.Background(), "seller-1", "product-1", "other-listing-image"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign image err = %v, want ErrNotFound", err)
	}
}
