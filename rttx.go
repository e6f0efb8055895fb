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

package rttx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/builder"
	"dirpx.dev/rttx/config"
	"dirpx.dev/rttx/typeinfo"
)

// init initializes the global rttx state.
func init() {
	// Initialize state with default cfg, reg, and res.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rttx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rttx: builder returned nil resolver")
)

// Register builds and stores the descriptor for a new type whose parents
// are the already-registered types with the given names. Registration must
// proceed bases before derived types; an unknown parent is an error.
// This is a convenience wrapper around the global registry.
func Register(name string, parents ...string) (*typeinfo.Info, error) {
	return st.Load().reg.Register(name, parents...)
}

// MustRegister is like Register but panics on error. It is intended for
// start-up wiring where a failed registration is a programming error:
//
//	var staffMemberInfo = rttx.MustRegister("StaffMember")
//	var librarianInfo   = rttx.MustRegister("Librarian", "StaffMember")
func MustRegister(name string, parents ...string) *typeinfo.Info {
	in, err := Register(name, parents...)
	if err != nil {
		panic(err)
	}
	return in
}

// Bind associates a reflect.Type with a registered class name in the global
// registry, enabling InfoOf for plain Go values.
func Bind(t reflect.Type, name string) error {
	return st.Load().reg.Bind(t, name)
}

// Lookup returns the descriptor registered under name in the global registry.
func Lookup(name string) (*typeinfo.Info, bool) {
	return st.Load().reg.Lookup(name)
}

// InfoOf resolves the descriptor of v's actual constructed type using the
// global resolver: the Typed fast path first, then registry bindings.
func InfoOf(v any) (*typeinfo.Info, bool) {
	s := st.Load()
	return s.res.Info(v, s.cfg)
}

// DerivesFrom reports whether child is ancestor itself or a descendant of
// it, using the global resolver and configuration. The query is total.
func DerivesFrom(child, ancestor *typeinfo.Info) bool {
	s := st.Load()
	return s.res.Derives(child, ancestor, s.cfg)
}

// Derives reports whether the actual constructed type of v derives from
// ancestor. It returns false when v's descriptor cannot be determined.
func Derives(v any, ancestor *typeinfo.Info) bool {
	s := st.Load()
	in, ok := s.res.Info(v, s.cfg)
	if !ok {
		return false
	}
	return s.res.Derives(in, ancestor, s.cfg)
}

// Seal freezes the global registry, marking the end of the start-up
// construction phase. Subsequent registrations fail.
func Seal() {
	st.Load().reg.Seal()
}

// SetAll explicitly sets all global rttx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	publish(func(old *state) *state {
		ncfg := old.cfg
		if cfg != nil {
			ncfg = *cfg
		}
		nbld := old.bld
		if bld != nil {
			nbld = bld
		}

		n := &state{cfg: ncfg, ext: ext, bld: nbld}

		n.reg = reg
		if n.reg == nil {
			n.reg = nbld.BuildRegistry(ncfg, old.reg, ext)
		} else {
			n.preg = true
		}
		n.res = res
		if n.res == nil {
			n.res = nbld.BuildResolver(ncfg, n.reg, old.res, ext)
		} else {
			n.pres = true
		}
		return n
	})
}

// Config returns the global rttx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global rttx configuration to cfg.
// It rebuilds the unpinned layers using the new configuration.
func SetConfig(cfg apis.Config) {
	publish(func(old *state) *state {
		return old.rebuild(cfg, old.ext, old.bld)
	})
}

// Registry returns the global rttx registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global rttx registry to reg and pins it.
// The resolver is rebuilt against the new registry unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	publish(func(old *state) *state {
		n := old.clone()
		n.reg = reg
		n.preg = true
		if !n.pres {
			n.res = n.bld.BuildResolver(n.cfg, reg, old.res, n.ext)
		}
		return n
	})
}

// Resolver returns the global rttx resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global rttx resolver to res and pins it.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	publish(func(old *state) *state {
		n := old.clone()
		n.res = res
		n.pres = true
		return n
	})
}

// Builder returns the global rttx builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global rttx builder to b and rebuilds the unpinned
// layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	publish(func(old *state) *state {
		return old.rebuild(old.cfg, old.ext, b)
	})
}

// SetExt replaces the extension config and rebuilds unpinned layers via the
// builder.
func SetExt[T any](ext T) {
	publish(func(old *state) *state {
		return old.rebuild(old.cfg, ext, old.bld)
	})
}

// ExtAs returns the global rttx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global registry immune to automatic rebuilds.
func PinRegistry() {
	setPins(func(n *state) { n.preg = true })
}

// UnpinRegistry makes the global registry rebuildable again.
func UnpinRegistry() {
	setPins(func(n *state) { n.preg = false })
}

// IsResolverPinned returns whether the global resolver is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global resolver immune to automatic rebuilds.
func PinResolver() {
	setPins(func(n *state) { n.pres = true })
}

// UnpinResolver makes the global resolver rebuildable again.
func UnpinResolver() {
	setPins(func(n *state) { n.pres = false })
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global rttx state.
var st atomic.Pointer[state]

// publish derives a new snapshot from the current one under the build lock
// and stores it atomically. It panics if the derived snapshot has a nil
// registry or resolver.
func publish(derive func(old *state) *state) {
	buildMu.Lock()
	defer buildMu.Unlock()

	n := derive(st.Load())
	if n.reg == nil {
		panic(ErrNilRegistry)
	}
	if n.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(n)
}

// setPins publishes a copy of the current snapshot with adjusted pin flags.
func setPins(adjust func(n *state)) {
	publish(func(old *state) *state {
		n := old.clone()
		adjust(n)
		return n
	})
}

// state is the global rttx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global rttx configuration.
	cfg apis.Config
	// ext is the global rttx extension configuration.
	ext any
	// reg is the global rttx registry.
	reg apis.Registry
	// res is the global rttx resolver.
	res apis.Resolver
	// bld is the global rttx builder.
	bld apis.Builder
	// preg indicates whether the registry is pinned (immutable).
	preg bool
	// pres indicates whether the resolver is pinned (immutable).
	pres bool
}

// clone returns a shallow copy of s for writers to adjust before publishing.
func (s *state) clone() *state {
	c := *s
	return &c
}

// rebuild derives a snapshot for new cfg/ext/builder values, reconstructing
// the registry and resolver through b except where pins hold them fixed.
// Registry migration preserves descriptor identity (see apis.Builder).
func (s *state) rebuild(cfg apis.Config, ext any, b apis.Builder) *state {
	n := &state{cfg: cfg, ext: ext, bld: b, preg: s.preg, pres: s.pres}
	n.reg = s.reg
	if !s.preg {
		n.reg = b.BuildRegistry(cfg, s.reg, ext)
	}
	n.res = s.res
	if !s.pres {
		n.res = b.BuildResolver(cfg, n.reg, s.res, ext)
	}
	return n
}
