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

// Package typeinfo implements immutable run-time type descriptors.
//
// An Info is one node in a directed acyclic graph of type identities: it
// carries a human-readable class name and an ordered list of references to
// the descriptors of its declared parent types. Multiple parents are
// allowed, so diamond-shaped hierarchies are representable.
//
// Descriptors are compared by pointer identity, never by name. Two
// descriptors may share a name and still denote distinct types; DerivesFrom
// relies on identity for its base case.
//
// Descriptors are built once, bases before derived types, and are never
// mutated afterwards. All methods are safe for concurrent use once
// construction has finished.
package typeinfo

// Info is the run-time descriptor of a single type: its class name and the
// descriptors of its declared parents, in declaration order.
//
// The zero value is not useful; build descriptors with New.
type Info struct {
	// name is the human-readable class name. Not necessarily unique.
	name string
	// parents holds the declared parent descriptors in declaration order.
	// Never mutated after New returns.
	parents []*Info
}

// New builds an immutable descriptor for a type called name with the given
// parent descriptors. parents may be empty for a root type. Nil parents are
// dropped so callers can pass optional ancestors without pre-filtering.
//
// Every parent must already be fully built: descriptors reference each
// other directly, so constructing bases before derived types is what keeps
// the parent graph acyclic.
func New(name string, parents ...*Info) *Info {
	ps := make([]*Info, 0, len(parents))
	for _, p := range parents {
		if p != nil {
			ps = append(ps, p)
		}
	}
	return &Info{name: name, parents: ps}
}

// ClassName returns the class name supplied at construction.
func (in *Info) ClassName() string {
	return in.name
}

// NumParents returns the number of declared parents.
func (in *Info) NumParents() int {
	return len(in.parents)
}

// Parents returns a copy of the declared parent descriptors in declaration
// order. Mutating the returned slice does not affect the descriptor.
func (in *Info) Parents() []*Info {
	out := make([]*Info, len(in.parents))
	copy(out, in.parents)
	return out
}

// DerivesFrom reports whether in is other itself or a (possibly
// multiply-inherited) descendant of it. It is the reflexive-transitive
// closure of the parent relation:
//
//   - if in and other are the same descriptor, the answer is true;
//   - otherwise the answer is true iff some parent of in derives from
//     other, checked in declaration order with short-circuit on the first
//     hit. The result does not depend on declaration order.
//
// DerivesFrom is total: unrelated descriptors yield false, never an error.
// The walk revisits shared ancestors in diamond-heavy hierarchies; the
// strategy layer offers a memoized variant that bounds the cost to O(V+E).
func (in *Info) DerivesFrom(other *Info) bool {
	if in == other {
		return true
	}
	for _, p := range in.parents {
		if p.DerivesFrom(other) {
			return true
		}
	}
	return false
}

// Ancestors returns every descriptor reachable from in by following zero or
// more parent edges, starting with in itself, in depth-first declaration
// order with duplicates removed. in.DerivesFrom(a) holds exactly for the
// returned descriptors.
func (in *Info) Ancestors() []*Info {
	seen := make(map[*Info]struct{})
	var out []*Info
	var visit func(*Info)
	visit = func(n *Info) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
		for _, p := range n.parents {
			visit(p)
		}
	}
	visit(in)
	return out
}
