package application

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	repo "github.com/mewzone/mewzone/internal/domain/repository"
)

// CartService is the anonymous session cart. State lives in Redis keyed by a
// cart id cookie; nothing is ever written to Postgres for carts.
type CartService struct {
	Store    CartStore
	Products repo.ProductRepository
	Logger   *logrus.Logger
}

type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type Cart struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Add increments the quantity for an approved product. Quantities below 1
// are treated as 1. There is no remove or decrement operation.
func (s *CartService) Add(ctx context.Context, cartID, productID string, qty int64) error {
	if qty < 1 {
		qty = 1
	}
	if _, err := s.Products.GetApproved(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.Store.AddToCart(ctx, cartID, productID, qty)
}

// Get prices the cart. Unit prices are the effective (discounted) prices at
// read time; products that vanished or lost approval since they were added
// are skipped.
func (s *CartService) Get(ctx context.Context, cartID string) (*Cart, error) {
	items, err := s.Store.CartItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Lines: []CartLine{}, Total: decimal.Zero}
	for productID, qty := range items {
		p, pErr := s.Products.GetApproved(ctx, productID)
		if pErr != nil {
			if errors.Is(pErr, repo.ErrNotFound) {
				if s.Logger != nil {
					s.Logger.WithField("product_id", productID).Debug("cart line skipped, product unavailable")
				}
				continue
			}
			return nil, pErr
		}
		unit := p.EffectivePrice()
		line := CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  qty,
			UnitPrice: unit,
			LineTotal: unit.Mul(decimal.NewFromInt(qty)),
		}
		for _, img := range p.Images {
			if img.IsPrimary {
				line.ImageURL = img.URL
				break
			}
		}
		cart.Lines = append(cart.Lines, line)
		cart.Total = cart.Total.Add(line.LineTotal)
	}
	sort.Slice(cart.Lines, func(i, j int) bool { return cart.Lines[i].Name < cart.Lines[j].Name })
	return cart, nil
}

// Checkout clears the cart unconditionally. No order record is produced and
// no payment happens.
func (s *CartService) Checkout(ctx context.Context, cartID string) error {
	return s.Store.ClearCart(ctx, cartID)
}
