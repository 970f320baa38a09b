package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
)

func ghs(amount string) domain.Money {
	return domain.Money{
		Amount:   decimal.RequireFromString(amount),
		Currency: currency.MustParseISO("GHS"),
	}
}

func TestMoneyMulInt(t *testing.T) {
	tests := []struct {
		name string
		m    domain.Money
		qty  int
		want domain.Money
	}{
		{
			name: "unit price times quantity",
			m:    ghs("10.50"),
			qty:  3,
			want: ghs("31.50"),
		},
		{
			name: "zero quantity",
			m:    ghs("10.50"),
			qty:  0,
			want: ghs("0"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.MulInt(tt.qty)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestMoneyAdd(t *testing.T) {
	sum, err := ghs("1.25").Add(ghs("2.75"))
	require.NoError(t, err)
	assert.True(t, sum.Equal(ghs("4.00")))

	usd := domain.Money{
		Amount:   decimal.NewFromInt(1),
		Currency: currency.MustParseISO("USD"),
	}
	_, err = ghs("1.00").Add(usd)
	require.EqualError(t, err, "currency mismatch: GHS vs USD")
}

func TestMoneyEqual(t *testing.T) {
	// same numeric value, different scale
	assert.True(t, ghs("5").Equal(ghs("5.00")))

	usd := domain.Money{
		Amount:   decimal.NewFromInt(5),
		Currency: currency.MustParseISO("USD"),
	}
	assert.False(t, ghs("5").Equal(usd))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "10.50 GHS", ghs("10.5").String())
}
