package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender of a listed cat.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

// FurType of a listed cat.
type FurType string

const (
	FurShort  FurType = "SHORT"
	FurLong   FurType = "LONG"
	FurMedium FurType = "MEDIUM"
	FurCurly  FurType = "CURLY"
	FurWire   FurType = "WIRE"
)

func (f FurType) Valid() bool {
	switch f {
	case FurShort, FurLong, FurMedium, FurCurly, FurWire:
		return true
	}
	return false
}

// Media caps per listing type.
const (
	MaxProductImages = 3
	MaxProductVideos = 2
	MaxMateImages    = 5
	MaxMateVideos    = 1
)

// Product is a cat for sale. It becomes publicly visible only after an
// admin sets IsApproved.
type Product struct {
	ID                   string
	ShopID               string
	Name                 string
	BreedID              string
	BreedName            string
	Gender               Gender
	Color                string
	EyeColor             string
	FurType              FurType
	DateOfBirth          time.Time
	Location             string
	ReadyToGo            bool
	AvailableForPickup   bool
	AvailableForDelivery bool
	AdditionalNotes      string
	Price                decimal.Decimal
	DiscountPercentage   int
	Description          string
	IsApproved           bool
	ApprovedAt           *time.Time
	RejectedAt           *time.Time
	RejectionReason      string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Images  []ListingImage
	Videos  []ListingVideo
	Rating  float64
	Reviews int
}

// EffectivePrice is the price after the percentage discount, if any.
// Computed with exact decimal arithmetic.
func (p *Product) EffectivePrice() decimal.Decimal {
	return EffectivePrice(p.Price, p.DiscountPercentage)
}

// EffectivePrice applies a whole-percent discount to price.
// discount = 0 returns price unchanged.
func EffectivePrice(price decimal.Decimal, discountPct int) decimal.Decimal {
	if discountPct <= 0 {
		return price
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(discountPct)).Div(decimal.NewFromInt(100)))
	return price.Mul(factor)
}

// Mate is a cat offered for mating services. Same approval lifecycle as
// Product, with its own media caps.
type Mate struct {
	ID              string
	ShopID          string
	Name            string
	BreedID         string
	BreedName       string
	Gender          Gender
	Color           string
	AgeMonths       int
	MateCost        decimal.Decimal
	Description     string
	IsApproved      bool
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Images  []ListingImage
	Videos  []ListingVideo
	Rating  float64
	Reviews int
}

// ListingImage belongs to exactly one product or mate. At most one image
// per listing is primary; setting a new primary clears the previous one.
type ListingImage struct {
	ID         string
	ListingID  string
	URL        string
	AltText    string
	IsPrimary  bool
	UploadedAt time.Time
}

// ListingVideo belongs to exactly one product or mate.
type ListingVideo struct {
	ID         string
	ListingID  string
	URL        string
	FileSize   int64
	UploadedAt time.Time
}
