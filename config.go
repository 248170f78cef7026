// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfig is returned for configurations which can't be parsed or
// are invalid.
var ErrConfig = errors.New("tunit: config")

// Config configures a Loader, e.g. from a yaml-file:
//
//	prefix: Should
//	order: source
type Config struct {
	Prefix string `yaml:"prefix"`
	Order  string `yaml:"order"`
}

// LoadConfig parses and validates the yaml-file at given path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// ParseConfig decodes and validates a yaml-configuration from given
// reader.  Unknown fields are rejected; an empty document is the zero
// configuration.
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: decode: %v", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails for a prefix which is not exported, since reflection
// can't see unexported methods, and for an unknown order.
func (c Config) Validate() error {
	if c.Prefix != "" && !token.IsExported(c.Prefix) {
		return fmt.Errorf("%w: prefix %q: must start upper case",
			ErrConfig, c.Prefix)
	}
	if _, err := c.order(); err != nil {
		return err
	}
	return nil
}

func (c Config) order() (Order, error) {
	switch c.Order {
	case "", OrderReflection.String():
		return OrderReflection, nil
	case OrderSource.String():
		return OrderSource, nil
	}
	return 0, fmt.Errorf("%w: order %q: want %s or %s", ErrConfig,
		c.Order, OrderReflection, OrderSource)
}

// NewLoader returns a loader configured by given valid configuration.
func NewLoader(c Config) (*Loader, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	o, _ := c.order()
	return &Loader{Prefix: c.Prefix, Order: o}, nil
}
