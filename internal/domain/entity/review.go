package entity

import "time"

// ReviewSubject is the closed set of things a review can be attached to.
type ReviewSubject string

const (
	ReviewOfProduct ReviewSubject = "PRODUCT"
	ReviewOfShop    ReviewSubject = "SHOP"
	ReviewOfMate    ReviewSubject = "MATE"
)

// Review is a rating plus comment left by a user against a product, shop or
// mate. One review per (subject, user) pair, enforced by a unique constraint.
// New reviews start unapproved and await moderation.
type Review struct {
	ID         string
	Subject    ReviewSubject
	SubjectID  string
	UserID     string
	UserName   string
	Rating     int
	Comment    string
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
