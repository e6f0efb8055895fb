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

// Package manifest loads declarative type-hierarchy manifests.
//
// A manifest is a TOML document listing type declarations:
//
//	[[type]]
//	name = "Vehicle"
//
//	[[type]]
//	name = "AmphibiousVehicle"
//	parents = ["LandVehicle", "WaterVehicle"]
//
//	[[type]]
//	name = "LandVehicle"
//	parents = ["Vehicle"]
//
//	[[type]]
//	name = "WaterVehicle"
//	parents = ["Vehicle"]
//
// Declarations may appear in any order; Apply sorts them into
// bases-before-derived order before registering, so manifest authors are
// not burdened with the registry's topological-order precondition. Cycles
// and duplicate declarations are rejected before the registry is touched.
package manifest

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"dirpx.dev/rttx/apis"
)

var (
	// ErrEmptyName indicates a type declaration without a name.
	ErrEmptyName = errors.New("rttx(manifest): type declaration without a name")
	// ErrDuplicateType indicates two declarations sharing one name.
	ErrDuplicateType = errors.New("rttx(manifest): duplicate type declaration")
	// ErrCycle indicates that the declared parent relation is not acyclic.
	ErrCycle = errors.New("rttx(manifest): inheritance cycle detected")
)

// Manifest is a declarative description of a type hierarchy.
type Manifest struct {
	// Types holds the declarations in document order.
	Types []Type `toml:"type"`
}

// Type is a single type declaration.
type Type struct {
	// Name is the class name to register.
	Name string `toml:"name"`
	// Parents names the declared parent types, in declaration order.
	Parents []string `toml:"parents"`
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("rttx(manifest): decoding %s: %w", path, err)
	}
	return &m, nil
}

// Decode decodes a manifest from r.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("rttx(manifest): decoding: %w", err)
	}
	return &m, nil
}

// Sort returns the declarations in bases-before-derived order.
//
// Parents that are not declared in the manifest are treated as external:
// they are expected to exist in the target registry already, and Apply will
// surface the registry's unknown-ancestor error if they do not. Among types
// with no ordering constraint, document order is preserved.
func (m *Manifest) Sort() ([]Type, error) {
	declared := make(map[string]int, len(m.Types))
	for i, t := range m.Types {
		if t.Name == "" {
			return nil, ErrEmptyName
		}
		if _, dup := declared[t.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateType, t.Name)
		}
		declared[t.Name] = i
	}

	// Kahn's algorithm over the in-manifest parent edges.
	indegree := make([]int, len(m.Types))
	children := make([][]int, len(m.Types))
	for i, t := range m.Types {
		for _, p := range t.Parents {
			pi, ok := declared[p]
			if !ok {
				continue // external parent, no in-manifest constraint
			}
			indegree[i]++
			children[pi] = append(children[pi], i)
		}
	}

	// Document order doubles as the tie-breaker queue order.
	var queue []int
	for i := range m.Types {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	out := make([]Type, 0, len(m.Types))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		out = append(out, m.Types[i])
		for _, c := range children[i] {
			indegree[c]--
			if indegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}

	if len(out) != len(m.Types) {
		var stuck []string
		for i, t := range m.Types {
			if indegree[i] > 0 {
				stuck = append(stuck, t.Name)
			}
		}
		return nil, fmt.Errorf("%w: involving %v", ErrCycle, stuck)
	}
	return out, nil
}

// Apply registers every declared type into reg in topological order. On the
// first registration failure it stops and returns the error; earlier
// registrations remain in place, matching the registry's append-only
// construction model.
func (m *Manifest) Apply(reg apis.Registry) error {
	order, err := m.Sort()
	if err != nil {
		return err
	}
	for _, t := range order {
		if _, err := reg.Register(t.Name, t.Parents...); err != nil {
			return fmt.Errorf("rttx(manifest): applying %q: %w", t.Name, err)
		}
	}
	return nil
}
