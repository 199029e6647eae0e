package metrics

import (
	"testing"

	"storefront/internal/core/domain/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewOrderMetrics(reg)
	require.NoError(t, err)

	m.IdentifierAllocated("DHA")
	m.IdentifierAllocated("DHA")
	m.IdentifierAllocated("SYL")
	m.AllocationFailed("CHA")
	m.DeliveryNormalized(services.PathUpdate)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.allocated.WithLabelValues("DHA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.allocated.WithLabelValues("SYL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.normalized.WithLabelValues("update")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.normalized.WithLabelValues("save")))
}

func TestOrderMetrics_RegionLabelIsBounded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewOrderMetrics(reg)
	require.NoError(t, err)

	for _, region := range []string{"XQZ", "HOU", "12 ", "ÉTA", "GEN", "KHU"} {
		m.IdentifierAllocated(region)
		m.AllocationFailed(region)
	}

	assert.Equal(t, 3, testutil.CollectAndCount(m.allocated))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.allocated.WithLabelValues(OtherRegion)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.allocated.WithLabelValues("GEN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.allocated.WithLabelValues("KHU")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.failed))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.failed))
}

func TestNewOrderMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewOrderMetrics(reg)
	require.NoError(t, err)

	_, err = NewOrderMetrics(reg)

	assert.Error(t, err)
}
