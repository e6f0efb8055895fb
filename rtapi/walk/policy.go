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

package walk

import (
	"fmt"
	"strings"
)

// Policy controls how the ancestor graph is traversed when answering
// derives-from queries.
//
// # Overview
//
// Policy is a small enumerated type that selects a broad class of traversal
// behavior. It does not carry tuning parameters itself (depth limits and the
// like live in the resolution Config); it only picks the algorithm family.
//
// # Values
//
// The following policies are defined:
//
//   - Naive    — plain recursive descent, no bookkeeping.
//   - Memoized — visited-set traversal with a shared ancestor-set cache.
//   - Guarded  — visited-set traversal with an optional depth cutoff.
//
// # Contract
//
//   - Policy values MUST be safe to use concurrently across goroutines
//     (they are plain integers).
//   - Existing values MUST NOT change their semantics in breaking ways;
//     adding new values is allowed.
type Policy int

const (
	// Naive selects plain recursive descent over the parent lists.
	//
	// This is the reference behavior: a short-circuit existential check in
	// declaration order with no visited bookkeeping. Shared ancestors in
	// diamond-shaped hierarchies are revisited once per independent path,
	// which can inflate cost on heavily shared hierarchies. Correctness is
	// unaffected as long as the parent graph is acyclic.
	Naive Policy = iota

	// Memoized selects a visited-set traversal backed by a process-wide
	// ancestor-set cache.
	//
	// The first query against a descriptor computes its full ancestor set
	// in O(V+E) and caches it; subsequent queries are O(1) lookups.
	// Descriptors are immutable after construction, so cached sets never
	// go stale. Choose this for deep or diamond-heavy hierarchies.
	Memoized Policy = iota

	// Guarded selects a defensive traversal that tracks visited
	// descriptors and honors a configurable depth cutoff.
	//
	// The parent graph is acyclic by construction, so the guard is never
	// needed in a correctly wired process. It exists to turn a registration
	// bug that introduces a cycle into a terminating (negative) answer
	// instead of runaway recursion. A query that exhausts the depth cutoff
	// reports false.
	Guarded Policy = iota
)

// String returns the canonical textual representation of the policy, or
// "Unknown(n)" for values outside the defined set.
func (p Policy) String() string {
	switch p {
	case Naive:
		return "Naive"
	case Memoized:
		return "Memoized"
	case Guarded:
		return "Guarded"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Valid reports whether p is one of the defined policies.
func (p Policy) Valid() bool {
	switch p {
	case Naive, Memoized, Guarded:
		return true
	}
	return false
}

// Parse converts a string token into the corresponding Policy. Matching is
// case-insensitive and surrounding whitespace is ignored.
//
// Accepted inputs: "Naive", "Memoized", "Guarded".
//
// On failure Parse returns Naive and a non-nil error; callers MUST NOT rely
// on the returned Policy in the error case. Parse never panics.
func Parse(s string) (Policy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Naive, fmt.Errorf("walk: empty policy")
	}

	switch strings.ToLower(trimmed) {
	case "naive":
		return Naive, nil
	case "memoized":
		return Memoized, nil
	case "guarded":
		return Guarded, nil
	default:
		return Naive, fmt.Errorf("walk: unknown policy %q", s)
	}
}

// MustParse is like Parse but panics on invalid input. It is intended for
// hard-coded tokens in variable initializers:
//
//	var defaultPolicy = walk.MustParse("memoized")
func MustParse(s string) Policy {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalText implements encoding.TextMarshaler. Unknown values cannot be
// marshalled and yield a non-nil error.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("walk: cannot marshal unknown policy %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the same
// tokens as Parse. On failure the receiver is left unchanged.
func (p *Policy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = value
	return nil
}
