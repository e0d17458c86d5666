package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mewzone/mewzone/internal/domain/entity"
)

func newShopFixture() (*ShopService, *stubShops, *stubUsers, *stubUploader) {
	shops := newStubShops()
	users := newStubUsers()
	files := &stubUploader{}
	svc := &ShopService{
		Shops:    shops,
		Users:    users,
		Products: newStubProducts(),
		Reviews:  newStubReviews(),
		Files:    files,
	}
	return svc, shops, users, files
}

func TestCreateShop(t *testing.T) {
	svc, shops, users, files := newShopFixture()
	users.add(&entity.User{ID: "seller-1", Role: entity.RoleSeller, IsVerified: true})
	pic := fileOf("front.jpg", "image/jpeg", 1024)

	shop, err := svc.Create(context.Background(), "seller-1", ShopInput{
		ShopName: "Whisker Works",
		City:     "Portland",
	}, &pic)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if shop.IsApproved {
		t.Error("new shop should start unapproved")
	}
	if shop.ShopName != "Whisker Works" || shop.City != "Portland" {
		t.Errorf("shop fields not applied: %+v", shop)
	}
	if shop.ProfilePicture == "" || !strings.Contains(shop.ProfilePicture, "shops/seller-1/") {
		t.Errorf("ProfilePicture = %q, want shops/seller-1/ path", shop.ProfilePicture)
	}
	if len(files.uploads) != 1 {
		t.Errorf("uploads = %d, want 1", len(files.uploads))
	}
	if _, ok := shops.bySeller["seller-1"]; !ok {
		t.Error("shop not persisted for seller")
	}
}

func TestCreateShopRequiresSellerRole(t *testing.T) {
	svc, _, users, _ := newShopFixture()
	users.add(&entity.User{ID: "user-1", Role: entity.RoleNormal, IsVerified: true})

	_, err := svc.Create(context.Background(), "user-1", ShopInput{ShopName: "Nope"}, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateShopOnlyOnce(t *testing.T) {
	svc, shops, users, _ := newShopFixture()
	users.add(&entity.User{ID: "seller-1", Role: entity.RoleSeller, IsVerified: true})
	shops.add(&entity.SellerShop{ID: "shop-1", SellerID: "seller-1", ShopName: "First"})

	_, err := svc.Create(context.Background(), "seller-1", ShopInput{ShopName: "Second"}, nil)
	ve, ok := AsValidation(err)
	if !ok || ve.Fields["shop"] == "" {
		t.Fatalf("err = %v, want validation error on shop", err)
	}
}

func TestCreateShopUploadFailure(t *testing.T) {
	svc, shops, users, files := newShopFixture()
	users.add(&entity.User{ID: "seller-1", Role: entity.RoleSeller, IsVerified: true})
	files.failAlway = true
	pic := fileOf("front.jpg", "image/jpeg", 1024)

	_, err := svc.Create(context.Background(), "seller-1", ShopInput{ShopName: "Whisker Works"}, &pic)
	ve, ok := AsValidation(err)
	if !ok || ve.Fields["profile_picture"] == "" {
		t.Fatalf("err = %v, want validation error on profile_picture", err)
	}
	if len(shops.bySeller) != 0 {
		t.Error("shop should not be persisted when the picture upload fails")
	}
}

func TestUpdateShopKeepsApproval(t *testing.T) {
	svc, shops, users, _ := newShopFixture()
	users.add(&entity.User{ID: "seller-1", Role: entity.RoleSeller, IsVerified: true})
	shops.add(&entity.SellerShop{
		ID: "shop-1", SellerID: "seller-1",
		ShopName: "Old Name", IsApproved: true,
	})

	shop, err := svc.Update(context.Background(), "seller-1", ShopInput{
		ShopName:    "New Name",
		Description: "now with kittens",
	}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !shop.IsApproved {
		t.Error("update must not reset approval")
	}
	if shop.ShopName != "New Name" || shop.Description != "now with kittens" {
		t.Errorf("shop fields not applied: %+v", shop)
	}
	if len(shops.updated) != 1 {
		t.Errorf("repo updates = %d, want 1", len(shops.updated))
	}

	if _, err := svc.Update(context.Background(), "seller-1", ShopInput{}, nil); err == nil {
		t.Error("blank shop_name should fail")
	}
	if _, err := svc.Update(context.Background(), "seller-2", ShopInput{ShopName: "x"}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("update without shop: err = %v, want ErrNotFound", err)
	}
}

func TestShopDetailGate(t *testing.T) {
	svc, shops, _, _ := newShopFixture()
	shops.add(&entity.SellerShop{ID: "shop-1", SellerID: "seller-1", ShopName: "Visible", IsApproved: true})
	shops.add(&entity.SellerShop{ID: "shop-2", SellerID: "seller-2", ShopName: "Hidden"})
	svc.Products.(*stubProducts).add(&entity.Product{ID: "p1", ShopID: "shop-1", Name: "Biscuit", IsApproved: true})
	svc.Reviews.(*stubReviews).approved["SHOP:shop-1"] = []entity.Review{{ID: "r1", Rating: 5}}

	detail, err := svc.Get(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Shop.ShopName != "Visible" {
		t.Errorf("Shop.ShopName = %q", detail.Shop.ShopName)
	}
	if len(detail.Products) != 1 || len(detail.Reviews) != 1 {
		t.Errorf("products = %d, reviews = %d, want 1 and 1", len(detail.Products), len(detail.Reviews))
	}

	if _, err := svc.Get(context.Background(), "shop-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("pending shop: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing shop: err = %v, want ErrNotFound", err)
	}
}
