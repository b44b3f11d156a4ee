package promotion

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/money"
)

//go:generate stringer -type=Kind -trimprefix=Kind

// Kind tags the promotion variant.
type Kind int

const (
	KindNone Kind = iota
	KindGetOneFree
	KindPackage
	KindThreshold
)

// Promotion is a per-product discount rule. The zero value is no promotion.
type Promotion struct {
	kind    Kind
	every   int // n for GetOneFree, package size for Package, threshold for Threshold
	percent decimal.Decimal
}

// None returns the empty promotion.
func None() Promotion {
	return Promotion{}
}

// GetOneFree refunds one unit for every n units bought.
func GetOneFree(n int) Promotion {
	return Promotion{kind: KindGetOneFree, every: n}
}

// Package discounts every complete package of size units by percent.
func Package(size int, percent decimal.Decimal) Promotion {
	return Promotion{kind: KindPackage, every: size, percent: percent}
}

// Threshold discounts every unit beyond the threshold by percent.
func Threshold(threshold int, percent decimal.Decimal) Promotion {
	return Promotion{kind: KindThreshold, every: threshold, percent: percent}
}

func (p Promotion) Kind() Kind { return p.kind }

// Validate checks the variant's parameter bounds.
func (p Promotion) Validate() error {
	switch p.kind {
	case KindNone:
		return nil
	case KindGetOneFree:
		if p.every < 2 {
			return common.ConfigError(fmt.Sprintf("get one free needs at least 2 items, got %d", p.every))
		}
		return nil
	case KindPackage:
		if p.every < 1 {
			return common.ConfigError(fmt.Sprintf("package size must be positive, got %d", p.every))
		}
		return validatePercent(p.percent)
	case KindThreshold:
		if p.every < 0 {
			return common.ConfigError(fmt.Sprintf("threshold must not be negative, got %d", p.every))
		}
		return validatePercent(p.percent)
	default:
		return common.ConfigError(fmt.Sprintf("unknown promotion kind %s", p.kind))
	}
}

func validatePercent(percent decimal.Decimal) error {
	if !money.ValidPercent(percent) {
		return common.ConfigError(fmt.Sprintf("percent must be between 0 and 100, got %s", percent))
	}
	return nil
}

// Discount returns the amount taken off quantity units at unitPrice.
func (p Promotion) Discount(quantity int, unitPrice money.Money) money.Money {
	switch p.kind {
	case KindGetOneFree:
		if p.every <= 0 {
			return money.Zero
		}
		return unitPrice.Times(quantity / p.every)
	case KindPackage:
		if p.every <= 0 {
			return money.Zero
		}
		packages := quantity / p.every
		return unitPrice.Times(packages * p.every).Percent(p.percent)
	case KindThreshold:
		above := max(quantity-p.every, 0)
		return unitPrice.Times(above).Percent(p.percent)
	default:
		return money.Zero
	}
}

// InvoiceText describes the rule on an invoice line.
func (p Promotion) InvoiceText() string {
	switch p.kind {
	case KindGetOneFree:
		return fmt.Sprintf("buy %d, get 1 free", p.every-1)
	case KindPackage:
		return fmt.Sprintf("get %s%% off for every %d", p.percent.String(), p.every)
	case KindThreshold:
		return fmt.Sprintf("%2s%% off of every after the %d%s",
			p.percent.StringFixedBank(0), p.every, ordinalSuffix(p.every))
	default:
		return ""
	}
}

// ordinalSuffix only special-cases 1, 2 and 3, so 21 renders as "21th".
func ordinalSuffix(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
