package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		price    string
		discount int
		want     string
	}{
		{"100.00", 25, "75"},
		{"19.99", 0, "19.99"},
		{"19.99", -5, "19.99"},
		{"59.90", 10, "53.91"},
		{"0.03", 50, "0.015"},
		{"100.00", 100, "0"},
	}
	for _, tc := range cases {
		price := decimal.RequireFromString(tc.price)
		got := EffectivePrice(price, tc.discount)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("EffectivePrice(%s, %d) = %s, want %s", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestProductEffectivePrice(t *testing.T) {
	p := Product{Price: decimal.RequireFromString("80.00"), DiscountPercentage: 50}
	if got := p.EffectivePrice(); !got.Equal(decimal.NewFromInt(40)) {
		t.Errorf("EffectivePrice = %s, want 40", got)
	}
}
