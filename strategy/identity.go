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
	"dirpx.dev/rttx/typeinfo"
)

// NewIdentityStrategy creates the reflexive fast path for derives-from
// queries: identical descriptors derive from each other without any walk.
func NewIdentityStrategy() apis.Strategy {
	return identityStrategy{}
}

// identityStrategy answers the pointer-equality base case and the nil
// cases terminally; everything else falls through to a walking strategy.
type identityStrategy struct{}

// Ensure identityStrategy implements apis.Strategy.
var _ apis.Strategy = identityStrategy{}

// TryInfo always falls through: identity needs two descriptors, not a value.
func (identityStrategy) TryInfo(_ any, _ apis.Config) (*typeinfo.Info, bool) {
	return nil, false
}

// TryDerives answers reflexive and nil queries; other pairs fall through.
// Nil is terminal to keep the overall query total: a missing descriptor
// derives from nothing and nothing derives from it.
func (identityStrategy) TryDerives(child, ancestor *typeinfo.Info, _ apis.Config) (bool, bool) {
	if child == nil || ancestor == nil {
		return false, true
	}
	if child == ancestor {
		return true, true
	}
	return false, false
}
