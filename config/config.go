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
	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/rtapi/walk"
)

const (
	// DefaultMaxDepth represents the default for MaxDepth.
	// Zero leaves the Guarded walk unbounded in depth; its visited set
	// still terminates the traversal.
	DefaultMaxDepth = 0
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem represents the default for MapPreferElem.
	// When true, map value types are preferred when searching for named inner types.
	DefaultMapPreferElem = true
)

// DefaultWalk represents the default traversal policy. Naive matches the
// reference derives-from behavior.
var DefaultWalk = walk.Naive

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure limits and policy are valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if !cfg.Walk.Valid() {
		cfg.Walk = DefaultWalk
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Walk:          DefaultWalk,
		MaxDepth:      DefaultMaxDepth,
		MaxUnwrap:     DefaultMaxUnwrap,
		MapPreferElem: DefaultMapPreferElem,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithWalk sets the traversal policy.
// An invalid policy resets to the default.
func WithWalk(p walk.Policy) Option {
	return func(c *apis.Config) {
		if !p.Valid() {
			c.Walk = DefaultWalk
			return
		}
		c.Walk = p
	}
}

// WithMaxDepth sets the MaxDepth option for the Guarded policy.
// A negative value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth < 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
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

// WithMapPreferElem sets the MapPreferElem option.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) {
		c.MapPreferElem = prefer
	}
}
