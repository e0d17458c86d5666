package entity

import "time"

// Category groups breeds and products. Inactive categories are hidden from
// the catalog and ignored when tagging listings.
type Category struct {
	ID        string
	Name      string
	Slug      string
	IsActive  bool
	CreatedAt time.Time
}

// Breed is reference data; a breed may belong to any number of categories.
type Breed struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
