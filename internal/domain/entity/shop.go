package entity

import "time"

// SellerShop is a seller's storefront. Each seller owns at most one shop,
// and only admin-approved shops are visible in public catalog queries.
type SellerShop struct {
	ID              string
	SellerID        string
	ShopName        string
	Description     string
	ProfilePicture  string
	Location        string
	Address         string
	City            string
	State           string
	Country         string
	PostalCode      string
	FacebookPage    string
	InstagramHandle string
	TwitterHandle   string
	IsApproved      bool
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
