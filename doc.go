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

// Package rttx provides a global, process-wide run-time type identification
// service built on an explicit descriptor graph.
//
// rttx answers two questions about application types without relying on the
// host language's dynamic-type facilities: "what is the actual constructed
// type of this value?" and "is type A a (possibly multiply-inherited)
// descendant of type B?". Type identity is modeled as a DAG of immutable
// descriptors (typeinfo.Info), one singleton per participating type, each
// carrying a class name and ordered references to the descriptors of its
// declared parents.
//
// # Design
//
// The core of rttx is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: knobs that control how queries run (the derives-from walk
//     policy and its depth guard, and how reflect.Types are normalized for
//     bindings).
//
//   - Registry: the process-wide store of descriptor singletons, keyed by
//     class name, plus optional reflect.Type bindings. Registration runs in
//     a single start-up phase, bases before derived types: registering a
//     type whose parent has no descriptor yet fails fast. Because a
//     descriptor can only reference ancestors that already exist, the parent
//     graph is acyclic by construction.
//
//   - Resolver: a read-only object that answers descriptor queries by
//     trying strategies in priority order:
//     1. If the value implements common.Typed, use v.TypeInfo().
//     2. If the value's reflect.Type is bound in the Registry, use that.
//     3. Identical descriptors derive from each other (identity fast path).
//     4. Otherwise walk the parent DAG under the configured policy.
//     The Resolver is concurrency-safe for reads.
//
//   - Builder: a pluggable factory that knows how to construct Registry and
//     Resolver instances for a given Config (and optional extension data).
//     When the Builder migrates state from a previous Registry it carries
//     the descriptor singletons over untouched — queries compare
//     descriptors by pointer, so identity must survive rebuilds.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in. This means rttx queries are lock-free on the hot
// path:
//
//	info, ok := rttx.InfoOf(obj)
//	isStaff := rttx.DerivesFrom(info, staffMemberInfo)
//
// and concurrent callers always see a consistent snapshot.
//
// # Global API
//
// Read helpers — safe for concurrent use without additional locking:
//
//	Lookup(name string) (*typeinfo.Info, bool)
//	InfoOf(v any) (*typeinfo.Info, bool)
//	DerivesFrom(child, ancestor *typeinfo.Info) bool
//	Derives(v any, ancestor *typeinfo.Info) bool
//	Config() / Registry() / Resolver() / Builder()
//
// Registration helpers — called during start-up, before concurrent work:
//
//	Register(name string, parents ...string) (*typeinfo.Info, error)
//	MustRegister(name string, parents ...string) *typeinfo.Info
//	Bind(t reflect.Type, name string) error
//	Seal()
//
// Mutation helpers — each acquires an internal build lock, derives a new
// snapshot (rebuilding or reusing Registry/Resolver as needed), and
// atomically publishes it:
//
//	SetConfig(cfg apis.Config)
//	SetBuilder(b apis.Builder)
//	SetExt(ext T)
//	SetRegistry(reg apis.Registry)
//	SetResolver(res apis.Resolver)
//	SetAll(...)
//	PinRegistry() / UnpinRegistry() / PinResolver() / UnpinResolver()
//
// SetAll is the "hard reset" API, mainly used by tests to get a clean
// deterministic state between test cases.
//
// # Life cycle
//
// A process uses rttx in two phases. During start-up, exactly one goroutine
// registers every participating type in topological order (directly, via
// MustRegister wiring, or by applying a manifest), optionally binds
// reflect.Types, and optionally calls Seal. After that the descriptor graph
// is permanently read-only: every query is a synchronous, terminating, pure
// computation over immutable state, safe from any number of goroutines
// without locks. No query can fail — DerivesFrom is total and returns false
// for unrelated descriptors.
//
// # Pinning
//
// SetRegistry and SetResolver pin the layer they set: pinned layers are
// never rebuilt automatically (for example by SetConfig) until explicitly
// unpinned. Pinning exists for advanced scenarios where one layer is under
// full caller control while the others keep evolving.
//
// # Extension config
//
// The snapshot carries an opaque "ext" value owned by the embedding binary.
// rttx does not interpret it; the active Builder receives it on each
// rebuild, so out-of-tree builders can inject custom policy without hacking
// the rttx core.
//
// # Scope
//
// rttx is intentionally small. It maintains type identity and ancestry —
// nothing else. It does not enumerate fields or methods, does not serialize
// descriptors, and does not support removing types once registered.
package rttx
