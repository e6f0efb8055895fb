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

package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rttx/config"
	"dirpx.dev/rttx/manifest"
	"dirpx.dev/rttx/registry"
)

// vehiclesTOML declares the fleet diamond deliberately out of order:
// AmphibiousVehicle appears before its parents.
const vehiclesTOML = `
[[type]]
name = "AmphibiousVehicle"
parents = ["LandVehicle", "WaterVehicle"]

[[type]]
name = "LandVehicle"
parents = ["Vehicle"]

[[type]]
name = "Vehicle"

[[type]]
name = "WaterVehicle"
parents = ["Vehicle"]

[[type]]
name = "Fruit"
`

func TestDecode(t *testing.T) {
	m, err := manifest.Decode(strings.NewReader(vehiclesTOML))
	require.NoError(t, err)
	require.Len(t, m.Types, 5)

	assert.Equal(t, "AmphibiousVehicle", m.Types[0].Name)
	assert.Equal(t, []string{"LandVehicle", "WaterVehicle"}, m.Types[0].Parents)
	assert.Empty(t, m.Types[2].Parents)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.toml")
	require.NoError(t, os.WriteFile(path, []byte(vehiclesTOML), 0o644))

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Types, 5)

	_, err = manifest.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSort_BasesBeforeDerived(t *testing.T) {
	m, err := manifest.Decode(strings.NewReader(vehiclesTOML))
	require.NoError(t, err)

	order, err := m.Sort()
	require.NoError(t, err)
	require.Len(t, order, 5)

	pos := map[string]int{}
	for i, typ := range order {
		pos[typ.Name] = i
	}
	assert.Less(t, pos["Vehicle"], pos["LandVehicle"])
	assert.Less(t, pos["Vehicle"], pos["WaterVehicle"])
	assert.Less(t, pos["LandVehicle"], pos["AmphibiousVehicle"])
	assert.Less(t, pos["WaterVehicle"], pos["AmphibiousVehicle"])
}

func TestApply(t *testing.T) {
	m, err := manifest.Decode(strings.NewReader(vehiclesTOML))
	require.NoError(t, err)

	reg := registry.New(config.DefaultConfig())
	require.NoError(t, m.Apply(reg))
	assert.Equal(t, 5, reg.Count())

	amphibious, ok := reg.Lookup("AmphibiousVehicle")
	require.True(t, ok)
	vehicle, ok := reg.Lookup("Vehicle")
	require.True(t, ok)
	fruit, ok := reg.Lookup("Fruit")
	require.True(t, ok)

	assert.True(t, amphibious.DerivesFrom(vehicle))
	assert.False(t, amphibious.DerivesFrom(fruit))
}

func TestApply_ExternalParent(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	_, err := reg.Register("Vehicle")
	require.NoError(t, err)

	// The manifest only declares the derived type; Vehicle lives in the
	// registry already.
	m, err := manifest.Decode(strings.NewReader(`
[[type]]
name = "LandVehicle"
parents = ["Vehicle"]
`))
	require.NoError(t, err)
	require.NoError(t, m.Apply(reg))

	land, ok := reg.Lookup("LandVehicle")
	require.True(t, ok)
	vehicle, _ := reg.Lookup("Vehicle")
	assert.True(t, land.DerivesFrom(vehicle))
}

func TestApply_UnknownExternalParent(t *testing.T) {
	m, err := manifest.Decode(strings.NewReader(`
[[type]]
name = "LandVehicle"
parents = ["Vehicle"]
`))
	require.NoError(t, err)

	reg := registry.New(config.DefaultConfig())
	err = m.Apply(reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrUnknownAncestor)
}

func TestSort_Cycle(t *testing.T) {
	m, err := manifest.Decode(strings.NewReader(`
[[type]]
name = "A"
parents = ["B"]

[[type]]
name = "B"
parents = ["A"]
`))
	require.NoError(t, err)

	_, err = m.Sort()
	assert.ErrorIs(t, err, manifest.ErrCycle)
}

func TestSort_DuplicateAndEmptyName(t *testing.T) {
	m, err := manifest.Decode(strings.NewReader(`
[[type]]
name = "A"

[[type]]
name = "A"
`))
	require.NoError(t, err)
	_, err = m.Sort()
	assert.ErrorIs(t, err, manifest.ErrDuplicateType)

	m, err = manifest.Decode(strings.NewReader(`
[[type]]
parents = ["A"]
`))
	require.NoError(t, err)
	_, err = m.Sort()
	assert.ErrorIs(t, err, manifest.ErrEmptyName)
}

func TestSort_PreservesDocumentOrderAmongUnrelated(t *testing.T) {
	m, err := manifest.Decode(strings.NewReader(`
[[type]]
name = "C"

[[type]]
name = "A"

[[type]]
name = "B"
`))
	require.NoError(t, err)

	order, err := m.Sort()
	require.NoError(t, err)
	names := []string{order[0].Name, order[1].Name, order[2].Name}
	assert.Equal(t, []string{"C", "A", "B"}, names)
}
