package metercacher

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/policycache/bounded"
	"github.com/luxfi/policycache/policy"
)

func TestMeteredBoundedCache(t *testing.T) {
	require := require.New(t)

	var reg metric.Registry = prometheus.NewRegistry()
	c, err := NewBounded[string, int](
		"test",
		reg,
		bounded.Config{Capacity: 2, Policy: policy.LRU},
	)
	require.NoError(err)

	c.Put("a", 1)
	c.Put("b", 2)
	require.Equal(2.0, testutil.ToFloat64(c.metrics.len))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.portionFilled))

	val, ok := c.Get("a")
	require.True(ok)
	require.Equal(1, val)

	_, ok = c.Get("missing")
	require.False(ok)

	c.Put("c", 3) // evicts b
	_, ok = c.Get("b")
	require.False(ok)

	require.Equal(3.0, testutil.ToFloat64(c.metrics.putCount))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.getCount.With(hitLabels)))
	require.Equal(2.0, testutil.ToFloat64(c.metrics.getCount.With(missLabels)))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.evictions))

	c.Evict("a")
	require.Equal(1.0, testutil.ToFloat64(c.metrics.len))
	require.Equal(0.5, testutil.ToFloat64(c.metrics.portionFilled))

	c.Flush()
	require.Zero(testutil.ToFloat64(c.metrics.len))
	require.Zero(testutil.ToFloat64(c.metrics.portionFilled))

	// Explicit removal is not an eviction.
	require.Equal(1.0, testutil.ToFloat64(c.metrics.evictions))

	families, err := reg.Gather()
	require.NoError(err)
	require.NotEmpty(families)
}

func TestWrapAnyCacher(t *testing.T) {
	require := require.New(t)

	inner, err := bounded.New[string, string](bounded.Config{Capacity: 1, Policy: policy.FIFO})
	require.NoError(err)

	c, err := New[string, string]("wrapped", prometheus.NewRegistry(), inner)
	require.NoError(err)

	c.Put("x", "1")
	c.OnEvict("x", "1")
	require.Equal(1.0, testutil.ToFloat64(c.metrics.evictions))
	require.Equal(1.0, testutil.ToFloat64(c.metrics.putCount))
}

func TestDuplicateRegistration(t *testing.T) {
	require := require.New(t)

	reg := prometheus.NewRegistry()
	cfg := bounded.DefaultConfig()

	_, err := NewBounded[string, int]("dup", reg, cfg)
	require.NoError(err)

	c, err := NewBounded[string, int]("dup", reg, cfg)
	require.Error(err)
	require.Nil(c)
	require.Equal(errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestInvalidBoundedConfig(t *testing.T) {
	_, err := NewBounded[string, int]("bad", prometheus.NewRegistry(), bounded.Config{})
	require.Error(t, err)
	require.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}
