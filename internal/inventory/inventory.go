package inventory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-pos/internal/cart"
	"github.com/noah-isme/toko-pos/internal/catalog"
	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/coupon"
	"github.com/noah-isme/toko-pos/internal/money"
	"github.com/noah-isme/toko-pos/internal/obs"
	"github.com/noah-isme/toko-pos/internal/promotion"
)

// Inventory owns the registered products and coupons and hands out carts.
//
// Registration is a setup step. Once it is done the inventory is only read and may be shared by
// carts on different goroutines; Register and RegisterCoupon must not race with lookups.
type Inventory struct {
	Logger  zerolog.Logger
	Metrics *obs.PricingMetrics

	products []*catalog.Product
	coupons  []coupon.Coupon
}

// New returns an empty inventory. metrics may be nil.
func New(logger zerolog.Logger, metrics *obs.PricingMetrics) *Inventory {
	return &Inventory{Logger: logger, Metrics: metrics}
}

// Register parses spec, builds the product and appends it. Nothing is stored on failure.
func (inv *Inventory) Register(name string, price money.Money, spec promotion.Spec) (*catalog.Product, error) {
	product, err := inv.register(name, price, spec)
	inv.Metrics.ObserveRegistration(obs.KindProduct, err)
	if err != nil {
		inv.Logger.Warn().Err(err).Str("product", name).Str("code", common.CodeOf(err)).Msg("product_register_failed")
		return nil, err
	}
	inv.Logger.Debug().
		Str("product", name).
		Str("price", price.String()).
		Str("promotion", product.Promotion().Kind().String()).
		Msg("product_registered")
	return product, nil
}

func (inv *Inventory) register(name string, price money.Money, spec promotion.Spec) (*catalog.Product, error) {
	promo, err := promotion.Parse(spec)
	if err != nil {
		return nil, err
	}
	product, err := catalog.NewProduct(name, price, promo)
	if err != nil {
		return nil, err
	}
	inv.products = append(inv.products, product)
	return product, nil
}

// RegisterCoupon builds the coupon named by spec's type tag and appends it.
func (inv *Inventory) RegisterCoupon(name string, spec coupon.TypeSpec) (coupon.Coupon, error) {
	c, err := coupon.Build(name, spec)
	inv.Metrics.ObserveRegistration(obs.KindCoupon, err)
	if err != nil {
		inv.Logger.Warn().Err(err).Str("coupon", name).Msg("coupon_register_failed")
		return coupon.Coupon{}, err
	}
	inv.coupons = append(inv.coupons, c)
	inv.Logger.Debug().Str("coupon", name).Str("type", c.Kind().String()).Msg("coupon_registered")
	return c, nil
}

// Product returns the first product registered under name.
func (inv *Inventory) Product(name string) (*catalog.Product, error) {
	for _, p := range inv.products {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, common.NotFoundError("Unexisting product")
}

// Coupon returns the first coupon registered under name, or the nil coupon. A miss is not an error.
func (inv *Inventory) Coupon(name string) coupon.Coupon {
	for _, c := range inv.coupons {
		if c.Name() == name {
			return c
		}
	}
	return coupon.Nil()
}

// Products returns the registered products in insertion order.
func (inv *Inventory) Products() []*catalog.Product {
	out := make([]*catalog.Product, len(inv.products))
	copy(out, inv.products)
	return out
}

// Coupons returns the registered coupons in insertion order.
func (inv *Inventory) Coupons() []coupon.Coupon {
	out := make([]coupon.Coupon, len(inv.coupons))
	copy(out, inv.coupons)
	return out
}

// NewCart returns an empty cart bound to this inventory. The inventory does not keep it.
func (inv *Inventory) NewCart() *cart.Cart {
	return cart.New(inv, inv.Logger, inv.Metrics)
}

// String summarises the registry size.
func (inv *Inventory) String() string {
	return fmt.Sprintf("inventory(%d products, %d coupons)", len(inv.products), len(inv.coupons))
}
