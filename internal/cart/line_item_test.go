package cart

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-pos/internal/catalog"
	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/money"
	"github.com/noah-isme/toko-pos/internal/promotion"
)

func mustProduct(t *testing.T, name, price string, promo promotion.Promotion) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, money.MustParse(price), promo)
	require.NoError(t, err)
	return p
}

func TestNewLineItemRejectsBadCounts(t *testing.T) {
	p := mustProduct(t, "Pen", "1.00", promotion.None())

	_, err := NewLineItem(p, 0)
	require.True(t, errors.Is(err, common.ErrInvalidQuantity))
	_, err = NewLineItem(p, -3)
	require.True(t, errors.Is(err, common.ErrInvalidQuantity))
	_, err = NewLineItem(p, 100)
	require.True(t, errors.Is(err, common.ErrQuantityLimit))

	item, err := NewLineItem(p, 99)
	require.NoError(t, err)
	require.Equal(t, 99, item.Count())
}

func TestIncreaseLeavesCountOnFailure(t *testing.T) {
	item, err := NewLineItem(mustProduct(t, "Pen", "1.00", promotion.None()), 50)
	require.NoError(t, err)

	require.True(t, errors.Is(item.Increase(50), common.ErrQuantityLimit))
	require.Equal(t, 50, item.Count())
	require.True(t, errors.Is(item.Increase(0), common.ErrInvalidQuantity))
	require.Equal(t, 50, item.Count())

	require.NoError(t, item.Increase(49))
	require.Equal(t, MaxCount, item.Count())
}

func TestIncreaseRejectsHugeCounts(t *testing.T) {
	item, err := NewLineItem(mustProduct(t, "Pen", "1.00", promotion.None()), 1)
	require.NoError(t, err)

	require.True(t, errors.Is(item.Increase(math.MaxInt), common.ErrQuantityLimit))
	require.Equal(t, 1, item.Count())
	require.True(t, item.Price().Equal(money.MustParse("1.00")))

	_, err = NewLineItem(item.Product(), math.MaxInt)
	require.True(t, errors.Is(err, common.ErrQuantityLimit))
}

func TestLineItemPricing(t *testing.T) {
	item, err := NewLineItem(mustProduct(t, "Milk", "4.00", promotion.Threshold(2, decimal.NewFromInt(50))), 5)
	require.NoError(t, err)

	require.True(t, item.PriceWithoutDiscount().Equal(money.MustParse("20.00")))
	require.True(t, item.Discount().Equal(money.MustParse("6.00")))
	require.True(t, item.Price().Equal(money.MustParse("14.00")))
	require.True(t, item.Discounted())

	plain, err := NewLineItem(mustProduct(t, "Bread", "2.00", promotion.GetOneFree(3)), 2)
	require.NoError(t, err)
	require.False(t, plain.Discounted())
	require.True(t, plain.Price().Equal(money.MustParse("4.00")))
}
