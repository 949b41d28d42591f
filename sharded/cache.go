// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sharded partitions string keys across independent bounded caches
// so unrelated keys do not contend on one lock.
package sharded

import (
	"bytes"
	"io"
	"slices"
	"sync/atomic"

	"github.com/jmgilman/go/errors"
	"github.com/spaolacci/murmur3"
	"gopkg.in/yaml.v3"

	"github.com/luxfi/policycache"
	"github.com/luxfi/policycache/bounded"
)

var _ policycache.Cacher[string, struct{}] = (*Cache[struct{}])(nil)

// DefaultShards is the largest shard count used when Config.Shards is zero.
// Smaller caches get one shard per entry of capacity.
const DefaultShards = 16

// Config describes a sharded cache. Capacity is the total across shards and
// is rounded up to a multiple of Shards; it must be at least Shards.
type Config struct {
	bounded.Config `yaml:",inline"`
	Shards         int `yaml:"shards"`
}

// LoadConfig decodes a YAML document such as
//
//	capacity: 1024
//	policy: lfu
//	shards: 8
//
// Omitted fields take bounded.DefaultConfig values; an omitted or zero shard
// count is derived as in New.
func LoadConfig(data []byte) (Config, error) {
	cfg := Config{Config: bounded.DefaultConfig()}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "failed to decode sharded cache config")
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether c describes a usable sharded cache.
func (c Config) Validate() error {
	if c.Shards <= 0 {
		err := errors.New(errors.CodeInvalidConfig, "shard count must be positive")
		return errors.WithContext(err, "shards", c.Shards)
	}
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.Capacity < c.Shards {
		err := errors.New(errors.CodeInvalidConfig, "capacity is smaller than shard count")
		return errors.WithContextMap(err, map[string]interface{}{
			"capacity": c.Capacity,
			"shards":   c.Shards,
		})
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Shards == 0 && c.Capacity > 0 {
		c.Shards = min(DefaultShards, c.Capacity)
	}
	return c
}

// Stats contains cache performance counters.
type Stats struct {
	EntriesCount uint64
	GetCalls     uint64
	PutCalls     uint64
	Misses       uint64
	Evictions    uint64
}

// Cache is a string-keyed cache split into shards by murmur3 hash. Each
// shard applies the configured eviction policy to its own keys only.
type Cache[V any] struct {
	shards   []*bounded.Cache[string, V]
	capacity int

	getCalls  atomic.Uint64
	putCalls  atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a sharded cache. opts are applied to every shard. A zero
// Shards uses DefaultShards, or Capacity shards if that is smaller.
func New[V any](cfg Config, opts ...bounded.Option[string, V]) (*Cache[V], error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	perShard := (cfg.Capacity + cfg.Shards - 1) / cfg.Shards
	c := &Cache[V]{
		shards:   make([]*bounded.Cache[string, V], cfg.Shards),
		capacity: perShard * cfg.Shards,
	}

	shardOpts := append(slices.Clip(opts), bounded.WithOnEvict(func(string, V) {
		c.evictions.Add(1)
	}))
	for i := range c.shards {
		shard, err := bounded.New[string, V](
			bounded.Config{Capacity: perShard, Policy: cfg.Policy},
			shardOpts...,
		)
		if err != nil {
			return nil, err
		}
		c.shards[i] = shard
	}
	return c, nil
}

func (c *Cache[V]) shard(key string) *bounded.Cache[string, V] {
	return c.shards[murmur3.Sum32([]byte(key))%uint32(len(c.shards))]
}

// Put stores value under key in the key's shard.
func (c *Cache[V]) Put(key string, value V) {
	c.putCalls.Add(1)
	c.shard(key).Put(key, value)
}

// Get looks up key in its shard.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.getCalls.Add(1)
	value, ok := c.shard(key).Get(key)
	if !ok {
		c.misses.Add(1)
	}
	return value, ok
}

// Evict removes key from its shard.
func (c *Cache[V]) Evict(key string) {
	c.shard(key).Evict(key)
}

// Flush removes all entries from every shard.
func (c *Cache[V]) Flush() {
	for _, s := range c.shards {
		s.Flush()
	}
}

// Reset clears all entries and counters.
func (c *Cache[V]) Reset() {
	c.Flush()
	c.getCalls.Store(0)
	c.putCalls.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Len returns the number of entries across shards.
func (c *Cache[V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.Len()
	}
	return n
}

// Cap returns the total capacity across shards.
func (c *Cache[V]) Cap() int {
	return c.capacity
}

// PortionFilled returns fraction of cache currently filled.
func (c *Cache[V]) PortionFilled() float64 {
	return float64(c.Len()) / float64(c.capacity)
}

// Validate checks the invariants of every shard.
func (c *Cache[V]) Validate() error {
	for i, s := range c.shards {
		if err := s.Validate(); err != nil {
			return errors.WithContext(err, "shard", i)
		}
	}
	return nil
}

// UpdateStats populates the provided stats struct.
func (c *Cache[V]) UpdateStats(s *Stats) {
	if s == nil {
		return
	}
	s.EntriesCount = uint64(c.Len())
	s.GetCalls = c.getCalls.Load()
	s.PutCalls = c.putCalls.Load()
	s.Misses = c.misses.Load()
	s.Evictions = c.evictions.Load()
}
