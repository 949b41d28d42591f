// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bounded

import (
	"bytes"
	"io"

	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/luxfi/policycache/policy"
)

// DefaultCapacity is the number of entries a cache holds when the
// configuration does not say otherwise.
const DefaultCapacity = 4

// Config fixes the shape of a cache for its whole lifetime.
type Config struct {
	// Capacity is the maximum number of entries.
	Capacity int `yaml:"capacity"`
	// Policy selects the eviction discipline.
	Policy policy.Kind `yaml:"policy"`
}

// DefaultConfig returns a FIFO cache holding DefaultCapacity entries.
func DefaultConfig() Config {
	return Config{
		Capacity: DefaultCapacity,
		Policy:   policy.FIFO,
	}
}

// Validate reports whether c describes a usable cache.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		err := errors.New(errors.CodeInvalidConfig, "capacity must be positive")
		return errors.WithContext(err, "capacity", c.Capacity)
	}
	if !c.Policy.Valid() {
		err := errors.New(errors.CodeInvalidConfig, "unknown eviction policy")
		return errors.WithContext(err, "policy", int(c.Policy))
	}
	return nil
}

// LoadConfig decodes a YAML document such as
//
//	capacity: 16
//	policy: lru
//
// Omitted fields, or an empty document, keep their DefaultConfig values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "failed to decode cache config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
