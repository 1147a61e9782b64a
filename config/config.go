/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"go.uber.org/zap"

	"dirpx.dev/rtx/apis"
)

const (
	// DefaultGenericNamespace represents the default for GenericNamespace.
	// Values without a namespace of their own dispatch to "Object".
	DefaultGenericNamespace = "Object"
	// DefaultMaxPositional represents the default for MaxPositional.
	// Instance methods receive their receiver plus at most four arguments.
	DefaultMaxPositional = 4
	// DefaultPathCacheSize represents the default for PathCacheSize.
	DefaultPathCacheSize = 1000
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.GenericNamespace == "" {
		cfg.GenericNamespace = DefaultGenericNamespace
	}
	if cfg.MaxPositional < 0 {
		cfg.MaxPositional = DefaultMaxPositional
	}
	if cfg.PathCacheSize <= 0 {
		cfg.PathCacheSize = DefaultPathCacheSize
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		GenericNamespace: DefaultGenericNamespace,
		MaxPositional:    DefaultMaxPositional,
		PathCacheSize:    DefaultPathCacheSize,
		MaxUnwrap:        DefaultMaxUnwrap,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithGenericNamespace sets the GenericNamespace option.
// An empty name resets to the default.
func WithGenericNamespace(name string) Option {
	return func(c *apis.Config) {
		if name == "" {
			c.GenericNamespace = DefaultGenericNamespace
			return
		}
		c.GenericNamespace = name
	}
}

// WithMaxPositional sets the MaxPositional option.
// A negative value resets to the default.
func WithMaxPositional(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.MaxPositional = DefaultMaxPositional
			return
		}
		c.MaxPositional = n
	}
}

// WithPathCacheSize sets the PathCacheSize option.
// A non-positive value resets to the default.
func WithPathCacheSize(size int) Option {
	return func(c *apis.Config) {
		if size <= 0 {
			c.PathCacheSize = DefaultPathCacheSize
			return
		}
		c.PathCacheSize = size
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithLogger sets the Logger option.
func WithLogger(l *zap.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = l
	}
}
