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

package resolver

import (
	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/typeinfo"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent
// use provided the strategies themselves are safe for concurrent calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Info runs strategies in order until one determines v's descriptor.
// Returns (nil, false) if no strategy handled the value.
func (r chain) Info(v any, cfg apis.Config) (*typeinfo.Info, bool) {
	for _, s := range r.strats {
		if in, ok := s.TryInfo(v, cfg); ok {
			return in, true
		}
	}
	return nil, false
}

// Derives runs strategies in order until one answers the query.
// Returns false if no strategy handled it: an unanswerable derives-from
// question is a negative one, keeping the query total.
func (r chain) Derives(child, ancestor *typeinfo.Info, cfg apis.Config) bool {
	for _, s := range r.strats {
		if ok, handled := s.TryDerives(child, ancestor, cfg); handled {
			return ok
		}
	}
	return false
}
