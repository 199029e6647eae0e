package services

// Write paths reported to Metrics.DeliveryNormalized.
const (
	PathSave   = "save"
	PathUpdate = "update"
)

// Metrics receives counters from the domain services. The prometheus
// implementation lives in internal/pkg/metrics.
type Metrics interface {
	IdentifierAllocated(region string)
	AllocationFailed(region string)
	DeliveryNormalized(path string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) IdentifierAllocated(string) {}
func (NopMetrics) AllocationFailed(string)    {}
func (NopMetrics) DeliveryNormalized(string)  {}
