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

// Describer augments Typed with human-oriented metadata about a type.
//
// # Overview
//
// Describer is a higher-level contract for types that want to expose more
// than their descriptor: a short description, a coarse category, and a
// schema version. The rttx core never requires Describer; it exists for
// documentation browsers, admin consoles, and introspection tooling built
// on top of the descriptor graph.
//
// All methods are type-level: they describe the kind of type, not any
// particular instance, and SHOULD be stable for a given version of the
// type's schema. None of them identify individual instances; if a system
// needs per-instance correlation keys it should model them alongside, not
// inside, this contract.
//
// # Contract
//
//   - All methods MUST be safe for concurrent use by multiple goroutines.
//   - All methods SHOULD be inexpensive and ideally allocation-free
//     (string literals or precomputed values).
//   - Implementations MUST NOT perform blocking operations or I/O.
type Describer interface {
	Typed

	// Description returns a concise, human-readable summary of what the
	// type represents. It MAY be empty; callers SHOULD fall back to the
	// descriptor's class name in that case.
	Description() string

	// Category returns a coarse-grained grouping for the type, drawn from
	// an application-wide controlled vocabulary (for example "identity",
	// "catalog", "vehicle"). It MAY be empty; callers SHOULD group such
	// types under "uncategorized".
	Category() string

	// Version returns a schema or contract version for the type, such as
	// "v1" or "2024-01-15". It MUST change when the externally visible
	// contract of the type changes incompatibly, and SHOULD remain
	// constant across deployments of the same build. An empty string means
	// "version unknown", not "no version".
	Version() string
}
