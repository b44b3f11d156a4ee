package catalog

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/money"
	"github.com/noah-isme/toko-pos/internal/promotion"
)

// nameRule bounds product names, counted in characters.
const nameRule = "min=1,max=40"

var (
	minPrice = money.FromCents(0)
	maxPrice = money.FromCents(100_000)

	validateOnce sync.Once
	validate     *validator.Validate
)

func nameValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Product is an immutable catalog entry.
type Product struct {
	name      string
	price     money.Money
	promotion promotion.Promotion
}

// NewProduct validates the bounds and builds a product. Names hold 1 to 40 characters and prices lie
// strictly between 0 and 1000.
func NewProduct(name string, price money.Money, promo promotion.Promotion) (*Product, error) {
	if err := nameValidator().Var(name, nameRule); err != nil {
		return nil, common.ValidationError("Name should be between 1 and 40 characters")
	}
	if !minPrice.LessThan(price) || !price.LessThan(maxPrice) {
		return nil, common.ValidationError("Only prices between 0.01 and 999.99 allowed")
	}
	return &Product{name: name, price: price, promotion: promo}, nil
}

func (p *Product) Name() string { return p.name }

func (p *Product) Price() money.Money { return p.price }

func (p *Product) Promotion() promotion.Promotion { return p.promotion }
