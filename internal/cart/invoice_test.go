package cart_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-pos/internal/cart"
	"github.com/noah-isme/toko-pos/internal/coupon"
	"github.com/noah-isme/toko-pos/internal/money"
	"github.com/noah-isme/toko-pos/internal/promotion"
)

const delimiter = "+------------------------------------------------+----------+\n"

func TestInvoiceSingleItem(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "Pen", "9.99", promotion.None())
	c := cart.New(cat, zerolog.Nop(), nil)
	require.NoError(t, c.AddOne("Pen"))

	want := delimiter +
		"| Name                                       qty |    price |\n" +
		delimiter +
		"| Pen                                          1 |     9.99 |\n" +
		delimiter +
		"| TOTAL                                          |     9.99 |\n" +
		delimiter
	require.Equal(t, want, c.Invoice())
}

func TestInvoiceDiscountAndCouponRows(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "shirt", "20.00", promotion.Package(2, decimal.NewFromInt(50)))
	cat.coupons["TEN"] = coupon.AmountOff("TEN", money.MustParse("10"))
	c := cart.New(cat, zerolog.Nop(), nil)
	require.NoError(t, c.Add("shirt", 4))
	c.Use("TEN")

	lines := strings.SplitAfter(c.Invoice(), "\n")
	require.Equal(t, []string{
		delimiter,
		"| Name                                       qty |    price |\n",
		delimiter,
		"| shirt                                        4 |    80.00 |\n",
		"|   (get 50% off for every 2)                    |   -40.00 |\n",
		"| Coupon TEN - 10.00 off                         |   -10.00 |\n",
		delimiter,
		"| TOTAL                                          |    30.00 |\n",
		delimiter,
		"",
	}, lines)
}

func TestInvoiceOmitsZeroRows(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "Tea", "1.00", promotion.GetOneFree(3))
	cat.coupons["ZERO"] = coupon.PercentOff("ZERO", decimal.Zero)
	c := cart.New(cat, zerolog.Nop(), nil)
	require.NoError(t, c.Add("Tea", 2))
	c.Use("ZERO")

	out := c.Invoice()
	require.NotContains(t, out, "buy 2, get 1 free")
	require.NotContains(t, out, "Coupon")
	require.Equal(t, 7, strings.Count(out, "\n"))
}

func TestInvoicePrinterIsRepeatable(t *testing.T) {
	cat := newStubCatalog()
	cat.add(t, "Pen", "9.99", promotion.None())
	c := cart.New(cat, zerolog.Nop(), nil)
	require.NoError(t, c.AddOne("Pen"))

	p := cart.NewInvoicePrinter(c)
	require.Equal(t, p.String(), p.String())
}
