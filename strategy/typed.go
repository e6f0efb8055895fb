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
	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/rtapi/common"
	"dirpx.dev/rttx/typeinfo"
)

// NewTypedStrategy creates an apis.Strategy that uses common.Typed.
func NewTypedStrategy() apis.Strategy {
	return &typedStrategy{}
}

// typedStrategy is a zero-cost fast path: if v implements common.Typed,
// return its TypeInfo() and stop the chain. This is the dynamic-dispatch
// route, so a value reached through an ancestor-typed reference still
// reports the descriptor of its actual constructed type.
type typedStrategy struct{}

// Ensure typedStrategy implements apis.Strategy.
var _ apis.Strategy = (*typedStrategy)(nil)

// TryInfo checks if v implements common.Typed and returns its TypeInfo().
func (*typedStrategy) TryInfo(v any, _ apis.Config) (*typeinfo.Info, bool) {
	if v == nil {
		return nil, false
	}
	if t, ok := v.(common.Typed); ok {
		if in := t.TypeInfo(); in != nil {
			return in, true
		}
	}
	return nil, false
}

// TryDerives always falls through: Typed answers identity, not reachability.
func (*typedStrategy) TryDerives(_, _ *typeinfo.Info, _ apis.Config) (bool, bool) {
	return false, false
}
