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

package apis

import (
	"reflect"

	"dirpx.dev/rttx/typeinfo"
)

// Registry holds the process-wide descriptor singletons, keyed by class
// name, plus optional reflect.Type bindings for value-based lookups.
//
// Registration must proceed in topological order of the hierarchy: every
// parent named in a Register call must already be registered. Keep the
// interface minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register builds and stores the descriptor for a new type whose
	// parents are the already-registered types with the given names.
	// It is idempotent for an identical (name, parents) pair; conflicting
	// re-registrations and unknown parents are errors.
	Register(name string, parents ...string) (*typeinfo.Info, error)
	// Install stores a prebuilt descriptor under its class name. It is the
	// identity-preserving path used when migrating entries between
	// registries; unlike Register it does not resolve or verify parents.
	Install(e Entry) error
	// Bind associates a (nearest named) reflect.Type with a registered
	// class name, enabling LookupType for plain Go values.
	Bind(t reflect.Type, name string) error
	// Lookup returns the descriptor registered under name, if any.
	Lookup(name string) (*typeinfo.Info, bool)
	// LookupType returns the descriptor bound to t, if any.
	LookupType(t reflect.Type) (*typeinfo.Info, bool)
	// Entries returns a snapshot for diagnostics/migration (order is unspecified).
	Entries() []Entry
	// Bindings returns a snapshot of the reflect.Type bindings (order is unspecified).
	Bindings() []Binding
	// Count returns the number of registered descriptors.
	Count() int
	// Seal freezes the registry: further Register/Install/Bind calls fail.
	// Sealing marks the end of the start-up construction phase.
	Seal()
	// Sealed reports whether the registry has been sealed.
	Sealed() bool
	// Reset clears all descriptors and bindings and reopens the registry.
	Reset()
}

// Entry is a single (name, descriptor) association in a Registry snapshot.
type Entry struct {
	// Name is the class name the descriptor is registered under.
	Name string
	// Info is the descriptor.
	Info *typeinfo.Info
}

// Binding is a single (reflect.Type, name) association in a Registry snapshot.
type Binding struct {
	// Type is the bound reflect.Type, already normalized.
	Type reflect.Type
	// Name is the class name the type is bound to.
	Name string
}
