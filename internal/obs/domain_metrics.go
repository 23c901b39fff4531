package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout outcome labels used with CheckoutTotal.
const (
	CheckoutResultOK                  = "ok"
	CheckoutResultEmptyCart           = "empty_cart"
	CheckoutResultOutOfStock          = "out_of_stock"
	CheckoutResultExpired             = "expired_product"
	CheckoutResultInsufficientBalance = "insufficient_balance"
)

var (
	domainOnce sync.Once

	// CheckoutTotal counts checkout attempts by outcome.
	CheckoutTotal *prometheus.CounterVec
	// ShippedUnitsTotal counts physical units handed to the shipping notifier.
	ShippedUnitsTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific
// Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout attempts by outcome.",
		}, []string{"result"})
		ShippedUnitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipped_units_total",
			Help:      "Number of physical units dispatched to the shipping notifier.",
		})

		if existing, ok := mustRegisterCollector(reg, CheckoutTotal).(*prometheus.CounterVec); ok {
			CheckoutTotal = existing
		}
		if existing, ok := mustRegisterCollector(reg, ShippedUnitsTotal).(prometheus.Counter); ok {
			ShippedUnitsTotal = existing
		}
	})
}

// ObserveCheckout records a checkout outcome when domain metrics are enabled.
func ObserveCheckout(result string) {
	if CheckoutTotal != nil {
		CheckoutTotal.WithLabelValues(result).Inc()
	}
}

// ObserveShippedUnits records the number of units handed to the notifier.
func ObserveShippedUnits(n int) {
	if ShippedUnitsTotal != nil && n > 0 {
		ShippedUnitsTotal.Add(float64(n))
	}
}
