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

// Package registry implements the process-wide descriptor registry.
//
// Registration runs in a single start-up phase, bases before derived types:
// Register resolves each parent name to its already-built descriptor and
// fails fast if one is missing, so the parent graph is acyclic by
// construction. After Seal (or simply after start-up) the registry is
// read-only and all lookups are safe for concurrent, lock-free use.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/typeinfo"
	uref "dirpx.dev/rttx/utils/reflect"
)

var (
	// ErrEmptyName is returned when an empty class name is provided.
	ErrEmptyName = errors.New("rttx(registry): empty class name provided")
	// ErrNilInfo is returned when a nil descriptor is provided to Install.
	ErrNilInfo = errors.New("rttx(registry): nil descriptor provided")
	// ErrNilType is returned when a nil reflect.Type is provided to Bind.
	ErrNilType = errors.New("rttx(registry): nil reflect.Type provided")
	// ErrUnknownAncestor indicates a construction-order violation: a parent
	// named in Register has no descriptor yet. Registration must proceed in
	// topological order of the hierarchy (bases before derived types).
	ErrUnknownAncestor = errors.New("rttx(registry): parent type not registered")
	// ErrUnknownClass indicates an attempt to bind a reflect.Type to a
	// class name that has no descriptor.
	ErrUnknownClass = errors.New("rttx(registry): class name not registered")
	// ErrConflictingRegistration indicates an attempt to re-register a class
	// name with a different descriptor or parent list, or to re-bind a
	// reflect.Type to a different class.
	ErrConflictingRegistration = errors.New("rttx(registry): conflicting type registration")
	// ErrSealed indicates a registration attempt after Seal.
	ErrSealed = errors.New("rttx(registry): registry is sealed")
)

// New constructs a Registry that normalizes binding types according to cfg.
// Only MaxUnwrap and MapPreferElem are used here (the walk knobs are irrelevant).
func New(cfg apis.Config) apis.Registry {
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for binding-type normalization.
	cfg apis.Config
	// mu guards write-side consistency, the counter and the seal flag.
	mu sync.Mutex
	// names maps class name to its descriptor singleton.
	names sync.Map // map[string]*typeinfo.Info
	// binds maps normalized reflect.Type to a descriptor.
	binds sync.Map // map[reflect.Type]*typeinfo.Info
	// count tracks the number of registered descriptors.
	count int
	// sealed marks the end of the construction phase.
	sealed bool
}

// Register builds the descriptor for name from the already-registered
// parents and stores it. It is idempotent for an identical (name, parents)
// pair and returns the existing singleton in that case.
func (r *registry) Register(name string, parents ...string) (*typeinfo.Info, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	// Resolve parents first: a missing parent is a construction-order
	// violation and must fail before anything is stored.
	ps := make([]*typeinfo.Info, len(parents))
	for i, pname := range parents {
		p, ok := r.lookupName(pname)
		if !ok {
			return nil, fmt.Errorf("%w: %q (registering %q)", ErrUnknownAncestor, pname, name)
		}
		ps[i] = p
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.lookupName(name); ok {
		if sameParents(old, ps) {
			return old, nil // idempotent re-registration
		}
		return nil, fmt.Errorf("%w: %q", ErrConflictingRegistration, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil, ErrSealed
	}

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.lookupName(name); ok {
		if sameParents(old, ps) {
			return old, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrConflictingRegistration, name)
	}

	in := typeinfo.New(name, ps...)
	r.names.Store(name, in)
	r.count++
	return in, nil
}

// Install stores a prebuilt descriptor under its class name, preserving its
// identity. Parents are not resolved or verified; callers use Install to
// migrate already-consistent entries between registries.
func (r *registry) Install(e apis.Entry) error {
	if e.Info == nil {
		return ErrNilInfo
	}
	name := e.Name
	if name == "" {
		name = e.Info.ClassName()
	}
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}
	if old, ok := r.lookupName(name); ok {
		if old == e.Info {
			return nil // idempotent re-install
		}
		return fmt.Errorf("%w: %q", ErrConflictingRegistration, name)
	}
	r.names.Store(name, e.Info)
	r.count++
	return nil
}

// Bind associates the nearest named type of t with the descriptor
// registered under name. It is idempotent for the same (type, name) pair.
func (r *registry) Bind(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}
	in, ok := r.lookupName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}

	// Normalize to the nearest named type according to r.cfg.
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}
	if old, ok := r.binds.Load(nt); ok {
		if old.(*typeinfo.Info) == in {
			return nil // idempotent re-binding
		}
		return fmt.Errorf("%w: %v", ErrConflictingRegistration, nt)
	}
	r.binds.Store(nt, in)
	return nil
}

// Lookup returns the descriptor registered under name, if any.
func (r *registry) Lookup(name string) (*typeinfo.Info, bool) {
	if name == "" {
		return nil, false
	}
	return r.lookupName(name)
}

// LookupType returns the descriptor bound to t, if any.
func (r *registry) LookupType(t reflect.Type) (*typeinfo.Info, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	if v, ok := r.binds.Load(nt); ok {
		return v.(*typeinfo.Info), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/migration (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.names.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Name: key.(string),
			Info: value.(*typeinfo.Info),
		})
		return true
	})
	return entries
}

// Bindings returns a snapshot of the reflect.Type bindings (order is unspecified).
func (r *registry) Bindings() []apis.Binding {
	var bindings []apis.Binding
	r.binds.Range(func(key, value any) bool {
		bindings = append(bindings, apis.Binding{
			Type: key.(reflect.Type),
			Name: value.(*typeinfo.Info).ClassName(),
		})
		return true
	})
	return bindings
}

// Count returns the number of registered descriptors.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Seal freezes the registry. Sealing twice is a no-op.
func (r *registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether the registry has been sealed.
func (r *registry) Sealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sealed
}

// Reset clears all descriptors and bindings and reopens the registry.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = sync.Map{}
	r.binds = sync.Map{}
	r.count = 0
	r.sealed = false
}

func (r *registry) lookupName(name string) (*typeinfo.Info, bool) {
	if v, ok := r.names.Load(name); ok {
		return v.(*typeinfo.Info), true
	}
	return nil, false
}

// sameParents reports whether in's parent list is exactly ps (same
// descriptors, same order). Identity comparison, not name comparison.
func sameParents(in *typeinfo.Info, ps []*typeinfo.Info) bool {
	got := in.Parents()
	if len(got) != len(ps) {
		return false
	}
	for i := range got {
		if got[i] != ps[i] {
			return false
		}
	}
	return true
}
