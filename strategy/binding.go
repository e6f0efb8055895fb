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
	"reflect"

	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/typeinfo"
)

// NewBindingStrategy creates a strategy that consults a Registry's
// reflect.Type bindings.
func NewBindingStrategy(reg apis.Registry) apis.Strategy {
	return &bindingStrategy{reg: reg}
}

// bindingStrategy resolves descriptors for plain Go values through the
// registry's type bindings. This is the tag-to-descriptor table route for
// types that cannot (or do not want to) carry a TypeInfo method.
type bindingStrategy struct {
	reg apis.Registry
}

// Ensure bindingStrategy implements apis.Strategy.
var _ apis.Strategy = (*bindingStrategy)(nil)

// TryInfo looks up v's dynamic reflect.Type in the registry bindings.
func (s *bindingStrategy) TryInfo(v any, _ apis.Config) (*typeinfo.Info, bool) {
	if v == nil || s.reg == nil {
		return nil, false
	}
	return s.reg.LookupType(reflect.TypeOf(v))
}

// TryDerives always falls through: bindings answer identity, not reachability.
func (s *bindingStrategy) TryDerives(_, _ *typeinfo.Info, _ apis.Config) (bool, bool) {
	return false, false
}
