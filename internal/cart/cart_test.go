package cart_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-pos/internal/cart"
	"github.com/noah-isme/toko-pos/internal/catalog"
	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/coupon"
	"github.com/noah-isme/toko-pos/internal/money"
	"github.com/noah-isme/toko-pos/internal/obs"
	"github.com/noah-isme/toko-pos/internal/promotion"
)

type stubCatalog struct {
	products map[string]*catalog.Product
	coupons  map[string]coupon.Coupon
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{products: map[string]*catalog.Product{}, coupons: map[string]coupon.Coupon{}}
}

func (s *stubCatalog) Product(name string) (*catalog.Product, error) {
	p, ok := s.products[name]
	if !ok {
		return nil, common.NotFoundError("Unexisting product")
	}
	return p, nil
}

func (s *stubCatalog) Coupon(name string) coupon.Coupon {
	if c, ok := s.coupons[name]; ok {
		return c
	}
	return coupon.Nil()
}

func (s *stubCatalog) add(t *testing.T, name, price string, promo promotion.Promotion) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, money.MustParse(price), promo)
	require.NoError(t, err)
	s.products[name] = p
	return p
}

func requireMoney(t *testing.T, want string, got money.Money) {
	t.Helper()
	require.Truef(t, money.MustParse(want).Equal(got), "expected %s, got %s", want, got.Decimal())
}

func TestAddMergesSameProduct(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "Pen", "1.00", promotion.None())
	cat.add(t, "Ink", "2.00", promotion.None())
	c := cart.New(cat, zerolog.Nop(), nil)

	require.NoError(t, c.Add("Pen", 3))
	require.NoError(t, c.AddOne("Ink"))
	require.NoError(t, c.Add("Pen", 4))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Pen", items[0].Product().Name())
	assert.Equal(t, 7, items[0].Count())
	assert.Equal(t, "Ink", items[1].Product().Name())
	assert.Equal(t, 1, items[1].Count())
	requireMoney(t, "9.00", c.ItemsPrice())
}

func TestAddPropagatesErrors(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "Pen", "1.00", promotion.None())
	c := cart.New(cat, zerolog.Nop(), nil)

	err := c.Add("Pencil", 1)
	require.True(t, errors.Is(err, common.ErrNotFound))
	assert.EqualError(t, err, "Unexisting product")

	err = c.Add("Pen", 0)
	require.True(t, errors.Is(err, common.ErrInvalidQuantity))
	assert.Empty(t, c.Items())

	require.NoError(t, c.Add("Pen", 99))
	err = c.AddOne("Pen")
	require.True(t, errors.Is(err, common.ErrQuantityLimit))
	assert.Equal(t, 99, c.Items()[0].Count())
}

func TestEmptyCart(t *testing.T) {
	c := cart.New(newStubCatalog(), zerolog.Nop(), nil)
	requireMoney(t, "0", c.ItemsPrice())
	requireMoney(t, "0", c.CouponDiscount())
	requireMoney(t, "0", c.Total())
	assert.Equal(t, coupon.KindNil, c.Coupon().Kind())
	assert.NotEqual(t, c.ID(), cart.New(newStubCatalog(), zerolog.Nop(), nil).ID())
}

func TestPackageDiscountEndToEnd(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "shirt", "20.00", promotion.Package(2, decimal.NewFromInt(50)))
	c := cart.New(cat, zerolog.Nop(), nil)

	require.NoError(t, c.Add("shirt", 4))
	item := c.Items()[0]
	requireMoney(t, "80.00", item.PriceWithoutDiscount())
	requireMoney(t, "40.00", item.Discount())
	requireMoney(t, "40.00", item.Price())
	assert.True(t, item.Discounted())
	requireMoney(t, "40.00", c.ItemsPrice())
	requireMoney(t, "40.00", c.Total())
}

func TestAmountOffCouponClampsTotal(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "Pot", "50.00", promotion.None())
	cat.coupons["BIG"] = coupon.AmountOff("BIG", money.MustParse("150.00"))
	c := cart.New(cat, zerolog.Nop(), nil)

	require.NoError(t, c.Add("Pot", 2))
	c.Use("BIG")
	requireMoney(t, "100.00", c.ItemsPrice())
	requireMoney(t, "100.00", c.CouponDiscount())
	requireMoney(t, "0.00", c.Total())
	assert.False(t, c.Total().IsNegative())
}

func TestUseUnknownCouponFallsBackToNil(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "Pot", "50.00", promotion.None())
	cat.coupons["HALF"] = coupon.PercentOff("HALF", decimal.NewFromInt(50))
	c := cart.New(cat, zerolog.Nop(), nil)
	require.NoError(t, c.AddOne("Pot"))

	c.Use("HALF")
	requireMoney(t, "25.00", c.Total())

	c.Use("NOPE")
	assert.Equal(t, coupon.KindNil, c.Coupon().Kind())
	requireMoney(t, "50.00", c.Total())
}

func TestCartMetrics(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "Pen", "1.00", promotion.None())
	metrics := obs.NewPricingMetrics("toko", prometheus.NewRegistry())
	c := cart.New(cat, zerolog.Nop(), metrics)

	require.NoError(t, c.AddOne("Pen"))
	require.Error(t, c.AddOne("Pencil"))
	c.Use("NOPE")
	_ = c.Invoice()

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.CartAdds.WithLabelValues(obs.ResultOK)))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.CartAdds.WithLabelValues(common.CodeNotFound)))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.CouponsUsed.WithLabelValues("false")))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.Invoices.WithLabelValues("false")))
}
