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

package common

import (
	"dirpx.dev/rttx/typeinfo"
)

// Typed is the dynamic-type capability: it hands out the descriptor of a
// value's actual constructed type.
//
// # Overview
//
// Typed is the zero-reflection fast path of the rttx resolution subsystem.
// When a value implements Typed, resolution MUST prefer this interface and
// MUST NOT consult any further strategy (reflect bindings, registries) for
// that value.
//
// The contract simulates a built-in dynamic-type query purely through the
// descriptor graph: for any instance x whose most-derived constructed type
// is T, x.TypeInfo() MUST return exactly T's process-wide descriptor, even
// when x is reached through an interface or an embedded field typed as one
// of T's ancestors. In an embedding chain this means every level declares
// its own TypeInfo method shadowing the embedded one:
//
//	type StaffMember struct{}
//
//	func (StaffMember) TypeInfo() *typeinfo.Info { return staffMemberInfo }
//
//	type Librarian struct{ StaffMember }
//
//	func (Librarian) TypeInfo() *typeinfo.Info { return librarianInfo }
//
// A type that embeds a Typed base and does not re-declare TypeInfo will
// report its base's descriptor. That is the embedding analogue of forgetting
// a virtual override and is a wiring bug in the implementing type, not in
// the resolution layer.
//
// # Contract
//
//   - TypeInfo MUST return the same non-nil descriptor for every instance
//     of the implementing type, on every call, for the process lifetime.
//   - The returned descriptor MUST be the one built for the implementing
//     type during start-up registration (one descriptor per type).
//   - TypeInfo MUST be safe for concurrent calls from multiple goroutines.
//   - TypeInfo MUST NOT allocate, block, or perform I/O; returning a
//     package-level pointer is the expected implementation.
type Typed interface {
	// TypeInfo returns the descriptor of the value's actual constructed
	// type, regardless of the static type used to reach the value.
	TypeInfo() *typeinfo.Info
}

// TypedFunc adapts an ordinary function to the Typed interface.
//
// It is a convenience for wiring descriptors into values that cannot carry
// methods themselves (closures over arena slots, tag-to-descriptor tables,
// test doubles):
//
//	typed := common.TypedFunc(func() *typeinfo.Info { return vehicleInfo })
//
// All contractual requirements of Typed apply to the wrapped function.
type TypedFunc func() *typeinfo.Info

// TypeInfo implements Typed for TypedFunc.
func (f TypedFunc) TypeInfo() *typeinfo.Info {
	return f()
}
