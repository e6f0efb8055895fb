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

package builder

import (
	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/registry"
	"dirpx.dev/rttx/resolver"
	"dirpx.dev/rttx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its entries and bindings are carried over via Install, which
// keeps the descriptor singletons themselves intact: queries compare
// descriptors by pointer, so migration must never rebuild them. A sealed
// previous registry seals the new one as well.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, e := range preg.Entries() {
			_ = nreg.Install(e)
		}
		for _, bd := range preg.Bindings() {
			_ = nreg.Bind(bd.Type, bd.Name)
		}
		if preg.Sealed() {
			nreg.Seal()
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver based on the provided
// configuration and registry. The chain order fixes query priority: the
// Typed fast path wins over registry bindings for descriptor lookups, and
// the identity fast path answers reflexive queries before any walk runs.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewTypedStrategy(),
		strategy.NewBindingStrategy(reg),
		strategy.NewIdentityStrategy(),
		strategy.NewWalkStrategy(),
	)
}
