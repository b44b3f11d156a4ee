package obs

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/toko-pos/internal/common"
)

// Metric label values.
const (
	KindProduct = "product"
	KindCoupon  = "coupon"

	ResultOK = "ok"
)

// PricingMetrics groups Prometheus collectors for the pricing core. A nil *PricingMetrics is valid
// and records nothing.
type PricingMetrics struct {
	Registrations *prometheus.CounterVec
	CartAdds      *prometheus.CounterVec
	CouponsUsed   *prometheus.CounterVec
	Invoices      *prometheus.CounterVec
}

// NewPricingMetrics registers and returns the pricing collectors.
func NewPricingMetrics(namespace string, reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &PricingMetrics{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_registrations_total",
			Help:      "Count of product and coupon registrations by outcome.",
		}, []string{"kind", "result"}),
		CartAdds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_adds_total",
			Help:      "Count of cart add operations by outcome.",
		}, []string{"result"}),
		CouponsUsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_coupons_used_total",
			Help:      "Count of coupon selections, split by whether the coupon was known.",
		}, []string{"matched"}),
		Invoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_rendered_total",
			Help:      "Count of rendered invoices, split by whether a coupon discount applied.",
		}, []string{"coupon"}),
	}
	mustRegister(reg, &m.Registrations, &m.CartAdds, &m.CouponsUsed, &m.Invoices)
	return m
}

// ObserveRegistration records a catalog registration outcome.
func (m *PricingMetrics) ObserveRegistration(kind string, err error) {
	if m == nil || m.Registrations == nil {
		return
	}
	m.Registrations.WithLabelValues(kind, resultLabel(err)).Inc()
}

// ObserveCartAdd records a cart add outcome.
func (m *PricingMetrics) ObserveCartAdd(err error) {
	if m == nil || m.CartAdds == nil {
		return
	}
	m.CartAdds.WithLabelValues(resultLabel(err)).Inc()
}

// ObserveCouponUse records a coupon selection.
func (m *PricingMetrics) ObserveCouponUse(matched bool) {
	if m == nil || m.CouponsUsed == nil {
		return
	}
	m.CouponsUsed.WithLabelValues(boolLabel(matched)).Inc()
}

// ObserveInvoice records a rendered invoice.
func (m *PricingMetrics) ObserveInvoice(couponApplied bool) {
	if m == nil || m.Invoices == nil {
		return
	}
	m.Invoices.WithLabelValues(boolLabel(couponApplied)).Inc()
}

// resultLabel keeps cardinality bounded: the error code or "internal".
func resultLabel(err error) string {
	if err == nil {
		return ResultOK
	}
	if code := common.CodeOf(err); code != "" {
		return code
	}
	return "internal"
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func mustRegister(reg prometheus.Registerer, counters ...**prometheus.CounterVec) {
	for _, counter := range counters {
		if counter == nil || *counter == nil {
			continue
		}
		if err := reg.Register(*counter); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
					*counter = existing
				}
				continue
			}
			panic(fmt.Errorf("register counter: %w", err))
		}
	}
}
