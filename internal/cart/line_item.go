package cart

import (
	"fmt"

	"github.com/noah-isme/toko-pos/internal/catalog"
	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/money"
)

// MaxCount is the largest quantity a single line may hold.
const MaxCount = 99

// LineItem is one product line in a cart. The product is borrowed from the inventory.
type LineItem struct {
	product *catalog.Product
	count   int
}

// NewLineItem starts an empty line for product and increases it by count.
func NewLineItem(product *catalog.Product, count int) (*LineItem, error) {
	item := &LineItem{product: product}
	if err := item.Increase(count); err != nil {
		return nil, err
	}
	return item, nil
}

// Increase adds count units. On failure the line is left unchanged.
func (li *LineItem) Increase(count int) error {
	if count <= 0 {
		return common.InvalidQuantityError("You have to add at least one item")
	}
	if count > MaxCount-li.count {
		return common.QuantityLimitError(fmt.Sprintf("Maximum %d items of each product can be bought", MaxCount))
	}
	li.count += count
	return nil
}

func (li *LineItem) Product() *catalog.Product { return li.product }

func (li *LineItem) Count() int { return li.count }

// PriceWithoutDiscount is unit price times count.
func (li *LineItem) PriceWithoutDiscount() money.Money {
	return li.product.Price().Times(li.count)
}

// Discount is what the product's promotion takes off this line.
func (li *LineItem) Discount() money.Money {
	return li.product.Promotion().Discount(li.count, li.product.Price())
}

func (li *LineItem) Price() money.Money {
	return li.PriceWithoutDiscount().Sub(li.Discount())
}

func (li *LineItem) Discounted() bool {
	return !li.Discount().IsZero()
}
