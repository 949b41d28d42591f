// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metercacher provides metered cache implementations.
package metercacher

import (
	"slices"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/luxfi/metric"

	"github.com/luxfi/policycache"
	"github.com/luxfi/policycache/bounded"
)

var _ policycache.Cacher[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// Cache wraps a Cacher with metrics.
type Cache[K comparable, V any] struct {
	policycache.Cacher[K, V]
	metrics *cacheMetrics
}

// New creates a new metered cache wrapper. Metrics are registered under
// namespace in registry.
func New[K comparable, V any](
	namespace string,
	registry metric.Registry,
	c policycache.Cacher[K, V],
) (*Cache[K, V], error) {
	metrics, err := newMetrics(namespace, registry)
	if err != nil {
		err = errors.Wrapf(err, errors.CodeInvalidConfig, "failed to register %q cache metrics", namespace)
	}
	return &Cache[K, V]{
		Cacher:  c,
		metrics: metrics,
	}, err
}

// NewBounded creates a bounded cache described by cfg and wraps it with
// metrics, counting every capacity eviction.
func NewBounded[K comparable, V any](
	namespace string,
	registry metric.Registry,
	cfg bounded.Config,
	opts ...bounded.Option[K, V],
) (*Cache[K, V], error) {
	metrics, err := newMetrics(namespace, registry)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "failed to register %q cache metrics", namespace)
	}

	opts = append(slices.Clip(opts), bounded.WithOnEvict(func(K, V) {
		metrics.evictions.Inc()
	}))
	inner, err := bounded.New[K, V](cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		Cacher:  inner,
		metrics: metrics,
	}, nil
}

// OnEvict counts an eviction performed by the wrapped cache. Caches other
// than bounded.Cache can pass it to their own eviction hook.
func (c *Cache[K, V]) OnEvict(K, V) {
	c.metrics.evictions.Inc()
}

func (c *Cache[K, V]) Put(key K, value V) {
	start := time.Now()
	c.Cacher.Put(key, value)
	putDuration := time.Since(start)

	c.metrics.putCount.Inc()
	c.metrics.putTime.Add(float64(putDuration))
	c.updateFill()
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	start := time.Now()
	value, has := c.Cacher.Get(key)
	getDuration := time.Since(start)

	labels := missLabels
	if has {
		labels = hitLabels
	}
	c.metrics.getCount.With(labels).Inc()
	c.metrics.getTime.With(labels).Add(float64(getDuration))

	return value, has
}

func (c *Cache[K, _]) Evict(key K) {
	c.Cacher.Evict(key)
	c.updateFill()
}

func (c *Cache[_, _]) Flush() {
	c.Cacher.Flush()
	c.updateFill()
}

func (c *Cache[_, _]) updateFill() {
	c.metrics.len.Set(float64(c.Cacher.Len()))
	c.metrics.portionFilled.Set(c.Cacher.PortionFilled())
}
