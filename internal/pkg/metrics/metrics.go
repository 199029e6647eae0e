// Package metrics exposes the order pipeline counters to Prometheus.
package metrics

import (
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/core/domain/services"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// OtherRegion labels allocations whose region key is not tracked. Region keys
// come from customer-entered addresses, so only known prefixes become labels.
const OtherRegion = "OTHER"

var trackedRegions = map[string]struct{}{
	orderid.GenericRegion: {},
	"DHA":                 {}, // Dhaka
	"CHA":                 {}, // Chattogram
	"CHI":                 {}, // Chittagong
	"SYL":                 {}, // Sylhet
	"RAJ":                 {}, // Rajshahi
	"KHU":                 {}, // Khulna
	"BAR":                 {}, // Barishal
	"RAN":                 {}, // Rangpur
	"MYM":                 {}, // Mymensingh
}

func regionLabel(region string) string {
	if _, ok := trackedRegions[region]; ok {
		return region
	}
	return OtherRegion
}

var _ services.Metrics = (*OrderMetrics)(nil)

// OrderMetrics implements services.Metrics with Prometheus counters.
type OrderMetrics struct {
	allocated  *prometheus.CounterVec
	failed     prometheus.Counter
	normalized *prometheus.CounterVec
}

// NewOrderMetrics creates the counters and registers them with reg.
func NewOrderMetrics(reg prometheus.Registerer) (*OrderMetrics, error) {
	m := &OrderMetrics{
		allocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_identifiers_allocated_total",
			Help:      "Custom order identifiers allocated, by region.",
		}, []string{"region"}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_identifier_allocation_failures_total",
			Help:      "Failed custom order identifier allocations.",
		}),
		normalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_delivery_normalizations_total",
			Help:      "Writes rewritten so that delivery implies payment, by write path.",
		}, []string{"path"}),
	}

	for _, c := range []prometheus.Collector{m.allocated, m.failed, m.normalized} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *OrderMetrics) IdentifierAllocated(region string) {
	m.allocated.WithLabelValues(regionLabel(region)).Inc()
}

// AllocationFailed counts the failure without a region label. The region is
// part of the logged error.
func (m *OrderMetrics) AllocationFailed(string) {
	m.failed.Inc()
}

func (m *OrderMetrics) DeliveryNormalized(path string) {
	m.normalized.WithLabelValues(path).Inc()
}
