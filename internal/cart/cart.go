package cart

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-pos/internal/catalog"
	"github.com/noah-isme/toko-pos/internal/coupon"
	"github.com/noah-isme/toko-pos/internal/money"
	"github.com/noah-isme/toko-pos/internal/obs"
)

// Catalog resolves names for a cart. Product lookups may fail; coupon lookups fall back to the nil
// coupon.
type Catalog interface {
	Product(name string) (*catalog.Product, error)
	Coupon(name string) coupon.Coupon
}

// Cart aggregates line items in first-added order plus at most one coupon. A cart has a single
// writer; it does no locking of its own.
type Cart struct {
	id      uuid.UUID
	catalog Catalog
	items   []*LineItem
	coupon  coupon.Coupon
	logger  zerolog.Logger
	metrics *obs.PricingMetrics
}

// New creates an empty cart bound to c. metrics may be nil.
func New(c Catalog, logger zerolog.Logger, metrics *obs.PricingMetrics) *Cart {
	id := uuid.New()
	return &Cart{
		id:      id,
		catalog: c,
		coupon:  coupon.Nil(),
		logger:  logger.With().Str("cart_id", id.String()).Logger(),
		metrics: metrics,
	}
}

// ID identifies the cart in logs.
func (c *Cart) ID() uuid.UUID { return c.id }

// AddOne adds a single unit of the named product.
func (c *Cart) AddOne(productName string) error {
	return c.Add(productName, 1)
}

// Add adds quantity units of the named product, merging into an existing line for the same product.
// Lookup and quantity errors are returned unchanged.
func (c *Cart) Add(productName string, quantity int) error {
	err := c.add(productName, quantity)
	c.metrics.ObserveCartAdd(err)
	if err != nil {
		c.logger.Debug().Err(err).Str("product", productName).Int("qty", quantity).Msg("cart_add_failed")
		return err
	}
	c.logger.Debug().Str("product", productName).Int("qty", quantity).Msg("cart_add")
	return nil
}

func (c *Cart) add(productName string, quantity int) error {
	product, err := c.catalog.Product(productName)
	if err != nil {
		return err
	}
	for _, item := range c.items {
		if item.product == product {
			return item.Increase(quantity)
		}
	}
	item, err := NewLineItem(product, quantity)
	if err != nil {
		return err
	}
	c.items = append(c.items, item)
	return nil
}

// Use selects the named coupon, replacing any previous one. Unknown names select the nil coupon.
func (c *Cart) Use(couponName string) {
	c.coupon = c.catalog.Coupon(couponName)
	matched := c.coupon.Kind() != coupon.KindNil
	c.metrics.ObserveCouponUse(matched)
	c.logger.Debug().Str("coupon", couponName).Bool("matched", matched).Msg("cart_use_coupon")
}

// Items returns the lines in first-added order.
func (c *Cart) Items() []*LineItem {
	out := make([]*LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Coupon() coupon.Coupon { return c.coupon }

// ItemsPrice sums the discounted line prices.
func (c *Cart) ItemsPrice() money.Money {
	total := money.Zero
	for _, item := range c.items {
		total = total.Add(item.Price())
	}
	return total
}

func (c *Cart) CouponDiscount() money.Money {
	return c.coupon.Discount(c.ItemsPrice())
}

// Total is never negative: coupons are clamped to the items price.
func (c *Cart) Total() money.Money {
	return c.ItemsPrice().Sub(c.CouponDiscount())
}

// Invoice renders the cart as a fixed-width text table.
func (c *Cart) Invoice() string {
	out := NewInvoicePrinter(c).String()
	c.metrics.ObserveInvoice(!c.CouponDiscount().IsZero())
	return out
}
