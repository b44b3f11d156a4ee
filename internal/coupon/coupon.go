package coupon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/money"
)

//go:generate stringer -type=Kind -trimprefix=Kind

// Kind tags the coupon variant.
type Kind int

const (
	KindNil Kind = iota
	KindPercentOff
	KindAmountOff
)

// Coupon is a per-order discount. The zero value is the nil coupon.
type Coupon struct {
	kind    Kind
	name    string
	percent decimal.Decimal
	amount  money.Money
}

// TypeSpec is the configuration form of a coupon type: {"percent": 20} or {"amount": "5.00"}.
type TypeSpec map[string]any

// Nil is the "no coupon" state.
func Nil() Coupon {
	return Coupon{}
}

// PercentOff takes percent of the order subtotal.
func PercentOff(name string, percent decimal.Decimal) Coupon {
	return Coupon{kind: KindPercentOff, name: name, percent: percent}
}

// AmountOff takes a fixed amount, never more than the subtotal.
func AmountOff(name string, amount money.Money) Coupon {
	return Coupon{kind: KindAmountOff, name: name, amount: amount}
}

// Build constructs the coupon variant named by the single key of spec.
func Build(name string, spec TypeSpec) (Coupon, error) {
	if len(spec) != 1 {
		keys := make([]string, 0, len(spec))
		for key := range spec {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return Coupon{}, common.ConfigError(fmt.Sprintf("Unknown coupon: {%s}", strings.Join(keys, ", ")))
	}
	for key, value := range spec {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "percent":
			percent, err := common.ToDecimal(value)
			if err != nil {
				return Coupon{}, common.ConfigError(fmt.Sprintf("coupon %s percent: %v", name, err))
			}
			if !money.ValidPercent(percent) {
				return Coupon{}, common.ConfigError(fmt.Sprintf("coupon %s percent must be between 0 and 100, got %s", name, percent))
			}
			return PercentOff(name, percent), nil
		case "amount":
			amount, err := common.ToDecimal(value)
			if err != nil {
				return Coupon{}, common.ConfigError(fmt.Sprintf("coupon %s amount: %v", name, err))
			}
			if amount.IsNegative() {
				return Coupon{}, common.ConfigError(fmt.Sprintf("coupon %s amount must not be negative, got %s", name, amount))
			}
			return AmountOff(name, money.New(amount)), nil
		default:
			return Coupon{}, common.ConfigError(fmt.Sprintf("Unknown coupon: {%s}", key))
		}
	}
	return Coupon{}, nil
}

func (c Coupon) Kind() Kind { return c.kind }

// Name is empty for the nil coupon.
func (c Coupon) Name() string { return c.name }

// Discount returns the amount taken off subtotal.
func (c Coupon) Discount(subtotal money.Money) money.Money {
	switch c.kind {
	case KindPercentOff:
		return subtotal.Percent(c.percent)
	case KindAmountOff:
		return subtotal.Min(c.amount)
	default:
		return money.Zero
	}
}

// Description is the coupon summary shown on the invoice.
func (c Coupon) Description() string {
	switch c.kind {
	case KindPercentOff:
		return fmt.Sprintf("%s%% off", c.percent.String())
	case KindAmountOff:
		return fmt.Sprintf("%-5s off", c.amount.String())
	default:
		return ""
	}
}
