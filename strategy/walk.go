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

package strategy

import (
	"sync"

	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/rtapi/walk"
	"dirpx.dev/rttx/typeinfo"
)

// NewWalkStrategy creates the universal fallback for derives-from queries:
// a traversal of the ancestor graph honoring the configured walk policy.
func NewWalkStrategy() apis.Strategy {
	return walkStrategy{}
}

// walkStrategy walks the parent DAG from child looking for ancestor.
// Naive delegates to the descriptor's own recursive walk; Memoized consults
// a process-wide ancestor-set cache; Guarded tracks visited descriptors and
// honors cfg.MaxDepth so a registration bug that introduced a cycle
// terminates instead of recursing forever.
type walkStrategy struct{}

// Ensure walkStrategy implements apis.Strategy.
var _ apis.Strategy = walkStrategy{}

// ancestorSets caches the full ancestor set per descriptor for the Memoized
// policy. Descriptors are immutable after construction, so entries never go
// stale and the cache only ever grows to one entry per descriptor.
var ancestorSets sync.Map // key: *typeinfo.Info, val: map[*typeinfo.Info]struct{}

// TryInfo always falls through: the walk needs two descriptors, not a value.
func (walkStrategy) TryInfo(_ any, _ apis.Config) (*typeinfo.Info, bool) {
	return nil, false
}

// TryDerives answers every non-nil query; it is the terminal strategy.
func (walkStrategy) TryDerives(child, ancestor *typeinfo.Info, cfg apis.Config) (bool, bool) {
	if child == nil || ancestor == nil {
		return false, true
	}
	switch cfg.Walk {
	case walk.Memoized:
		_, ok := ancestorsOf(child)[ancestor]
		return ok, true
	case walk.Guarded:
		remaining := cfg.MaxDepth
		if remaining <= 0 {
			remaining = -1 // unbounded; the visited set still terminates
		}
		visited := make(map[*typeinfo.Info]struct{})
		return guardedWalk(child, ancestor, visited, remaining), true
	default:
		return child.DerivesFrom(ancestor), true
	}
}

// ancestorsOf returns the cached ancestor set of in, computing it on first
// use in O(V+E) over the ancestor sub-DAG.
func ancestorsOf(in *typeinfo.Info) map[*typeinfo.Info]struct{} {
	if v, ok := ancestorSets.Load(in); ok {
		return v.(map[*typeinfo.Info]struct{})
	}

	set := make(map[*typeinfo.Info]struct{})
	stack := []*typeinfo.Info{in}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := set[n]; seen {
			continue
		}
		set[n] = struct{}{}
		stack = append(stack, n.Parents()...)
	}

	ancestorSets.Store(in, set)
	return set
}

// guardedWalk is the defensive traversal: visited descriptors are skipped
// and remaining counts the parent edges still allowed on the current path
// (negative means unbounded). Exhausting the budget yields false; the guard
// trades completeness for termination.
func guardedWalk(in, target *typeinfo.Info, visited map[*typeinfo.Info]struct{}, remaining int) bool {
	if in == target {
		return true
	}
	if remaining == 0 {
		return false
	}
	if _, seen := visited[in]; seen {
		return false
	}
	visited[in] = struct{}{}

	for _, p := range in.Parents() {
		if guardedWalk(p, target, visited, remaining-1) {
			return true
		}
	}
	return false
}
