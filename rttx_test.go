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

package rttx

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/rttx/apis"
	"dirpx.dev/rttx/builder"
	"dirpx.dev/rttx/config"
	"dirpx.dev/rttx/rtapi/common"
	"dirpx.dev/rttx/rtapi/walk"
	"dirpx.dev/rttx/typeinfo"
)

// resetState swaps in a completely fresh default state, discarding whatever
// a previous test registered. Cleanup resets again so test order never
// matters.
func resetState(t *testing.T) {
	t.Helper()
	reset := func() {
		b := builder.New()
		cfg := config.DefaultConfig()
		reg := b.BuildRegistry(cfg, nil, nil)
		res := b.BuildResolver(cfg, reg, nil, nil)
		SetAll(&cfg, nil, reg, res, b)
		UnpinRegistry()
		UnpinResolver()
	}
	reset()
	t.Cleanup(reset)
}

// registerSchool wires the diamond fixture through the global facade.
func registerSchool(t *testing.T) {
	t.Helper()
	MustRegister("StaffMember")
	MustRegister("Librarian", "StaffMember")
	MustRegister("Teacher", "StaffMember")
	MustRegister("TeachingLibrarian", "Teacher", "Librarian")
	MustRegister("Sailboat")
}

// ---- classful fixture: embedded structs carrying their own descriptors ----

// Descriptors are assigned by the test after registration.
var (
	staffInfo     *typeinfo.Info
	librarianInfo *typeinfo.Info
)

type staffMemberVal struct {
	name string
}

func (staffMemberVal) TypeInfo() *typeinfo.Info { return staffInfo }

// librarianVal embeds staffMemberVal and re-declares TypeInfo, so a
// librarian reached through a common.Typed reference still reports the
// Librarian descriptor.
type librarianVal struct {
	staffMemberVal
}

func (librarianVal) TypeInfo() *typeinfo.Info { return librarianInfo }

// internVal embeds staffMemberVal but does not re-declare TypeInfo: the
// promoted method reports the base descriptor. That is the documented cost
// of skipping the re-declaration.
type internVal struct {
	staffMemberVal
}

// plainBoat has no TypeInfo method at all; only a binding can resolve it.
type plainBoat struct{}

func TestGlobalRegisterAndQuery(t *testing.T) {
	resetState(t)
	registerSchool(t)

	tl, ok := Lookup("TeachingLibrarian")
	if !ok {
		t.Fatal("TeachingLibrarian not found")
	}
	staff, _ := Lookup("StaffMember")
	sailboat, _ := Lookup("Sailboat")

	if !DerivesFrom(tl, staff) {
		t.Fatal("TeachingLibrarian should derive from StaffMember")
	}
	if !DerivesFrom(tl, tl) {
		t.Fatal("reflexive query should hold")
	}
	if DerivesFrom(tl, sailboat) {
		t.Fatal("TeachingLibrarian should not derive from Sailboat")
	}
	if DerivesFrom(staff, tl) {
		t.Fatal("no downcasts")
	}
	// Total on nil endpoints.
	if DerivesFrom(nil, staff) || DerivesFrom(staff, nil) || DerivesFrom(nil, nil) {
		t.Fatal("nil endpoints must answer false")
	}
}

func TestMustRegister_PanicsOnOrderViolation(t *testing.T) {
	resetState(t)
	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister should panic when a parent is unknown")
		}
	}()
	MustRegister("Librarian", "StaffMember")
}

func TestInfoOf_DynamicType(t *testing.T) {
	resetState(t)
	registerSchool(t)
	staffInfo, _ = Lookup("StaffMember")
	librarianInfo, _ = Lookup("Librarian")

	// The static reference type is the interface; the reported descriptor
	// follows the actual constructed type.
	var ref common.Typed = librarianVal{}
	in, ok := InfoOf(ref)
	if !ok || in != librarianInfo {
		t.Fatalf("InfoOf = (%v,%v), want the Librarian descriptor", in, ok)
	}

	// Promoted method: the embedder forgot to re-declare TypeInfo and is
	// reported as its base.
	ref = internVal{}
	if in, _ := InfoOf(ref); in != staffInfo {
		t.Fatalf("InfoOf(internVal) = %v, want the StaffMember descriptor", in)
	}

	// Values with no route at all do not resolve.
	if _, ok := InfoOf(plainBoat{}); ok {
		t.Fatal("descriptor-less value must not resolve")
	}
	if _, ok := InfoOf(nil); ok {
		t.Fatal("nil must not resolve")
	}
}

func TestDerives_OnValues(t *testing.T) {
	resetState(t)
	registerSchool(t)
	staffInfo, _ = Lookup("StaffMember")
	librarianInfo, _ = Lookup("Librarian")
	sailboat, _ := Lookup("Sailboat")

	if !Derives(librarianVal{}, staffInfo) {
		t.Fatal("a librarian value is a staff member")
	}
	if Derives(librarianVal{}, sailboat) {
		t.Fatal("a librarian value is not a sailboat")
	}
	if Derives(plainBoat{}, staffInfo) {
		t.Fatal("unresolvable values derive from nothing")
	}
}

func TestBind_ResolvesPlainValues(t *testing.T) {
	resetState(t)
	registerSchool(t)

	if err := Bind(reflect.TypeOf(plainBoat{}), "Sailboat"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	sailboat, _ := Lookup("Sailboat")

	if in, ok := InfoOf(plainBoat{}); !ok || in != sailboat {
		t.Fatalf("InfoOf = (%v,%v), want the Sailboat descriptor", in, ok)
	}
	// Containers of the bound type resolve through normalization.
	if in, ok := InfoOf(&plainBoat{}); !ok || in != sailboat {
		t.Fatalf("InfoOf(ptr) = (%v,%v), want the Sailboat descriptor", in, ok)
	}
	if !Derives(plainBoat{}, sailboat) {
		t.Fatal("bound value should derive from its own class")
	}
}

func TestSeal_GlobalRegistry(t *testing.T) {
	resetState(t)
	registerSchool(t)

	Seal()
	if _, err := Register("Intruder"); err == nil {
		t.Fatal("registration after Seal must fail")
	}
	if _, ok := Lookup("StaffMember"); !ok {
		t.Fatal("sealed registry must still answer lookups")
	}
}

// Reconfiguration must migrate the registry without rebuilding descriptors:
// pointers captured before SetConfig stay valid afterwards.
func TestSetConfig_PreservesDescriptorIdentity(t *testing.T) {
	resetState(t)
	registerSchool(t)

	before, _ := Lookup("TeachingLibrarian")
	staffBefore, _ := Lookup("StaffMember")

	SetConfig(config.NewConfig(config.WithWalk(walk.Memoized)))

	if Config().Walk != walk.Memoized {
		t.Fatalf("Walk = %v, want Memoized", Config().Walk)
	}
	after, ok := Lookup("TeachingLibrarian")
	if !ok || after != before {
		t.Fatal("reconfiguration rebuilt the descriptors")
	}
	if !DerivesFrom(before, staffBefore) {
		t.Fatal("pre-reconfiguration pointers must keep working")
	}
}

func TestPinning_Registry(t *testing.T) {
	resetState(t)
	registerSchool(t)

	reg := Registry()
	PinRegistry()
	if !IsRegistryPinned() {
		t.Fatal("registry should be pinned")
	}

	SetConfig(config.NewConfig(config.WithWalk(walk.Guarded)))
	if Registry() != reg {
		t.Fatal("pinned registry must survive reconfiguration")
	}

	UnpinRegistry()
	if IsRegistryPinned() {
		t.Fatal("registry should be unpinned")
	}
	SetConfig(config.NewConfig(config.WithWalk(walk.Naive)))
	if Registry() == reg {
		t.Fatal("unpinned registry should be rebuilt on reconfiguration")
	}
	// The rebuilt registry migrated the entries.
	if _, ok := Lookup("TeachingLibrarian"); !ok {
		t.Fatal("entries lost in rebuild")
	}
}

// mockResolver answers every query positively, no matter what.
type mockResolver struct {
	answer *typeinfo.Info
}

func (m mockResolver) Info(_ any, _ apis.Config) (*typeinfo.Info, bool) { return m.answer, true }
func (m mockResolver) Derives(_, _ *typeinfo.Info, _ apis.Config) bool  { return true }

func TestSetResolver_PinsAndOverrides(t *testing.T) {
	resetState(t)
	registerSchool(t)
	sailboat, _ := Lookup("Sailboat")
	staff, _ := Lookup("StaffMember")

	SetResolver(mockResolver{answer: sailboat})
	if !IsResolverPinned() {
		t.Fatal("SetResolver must pin")
	}

	// Every query now goes through the mock.
	if in, ok := InfoOf(42); !ok || in != sailboat {
		t.Fatal("mock resolver not in effect")
	}
	if !DerivesFrom(staff, sailboat) {
		t.Fatal("mock resolver should answer true")
	}

	// Reconfiguration must not displace the pinned resolver.
	SetConfig(config.NewConfig(config.WithWalk(walk.Memoized)))
	if in, _ := InfoOf("anything"); in != sailboat {
		t.Fatal("pinned resolver replaced by reconfiguration")
	}

	// Nil is ignored.
	SetResolver(nil)
	if in, _ := InfoOf("anything"); in != sailboat {
		t.Fatal("SetResolver(nil) must be a no-op")
	}
}

// mockBuilder wraps the real builder and counts invocations.
type mockBuilder struct {
	apis.Builder
	regBuilds *int
	resBuilds *int
}

func (m mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry, ext any) apis.Registry {
	*m.regBuilds++
	return m.Builder.BuildRegistry(cfg, prev, ext)
}

func (m mockBuilder) BuildResolver(cfg apis.Config, reg apis.Registry, prev apis.Resolver, ext any) apis.Resolver {
	*m.resBuilds++
	return m.Builder.BuildResolver(cfg, reg, prev, ext)
}

func TestSetBuilder_RebuildsThroughIt(t *testing.T) {
	resetState(t)
	registerSchool(t)

	var regBuilds, resBuilds int
	mb := mockBuilder{Builder: builder.New(), regBuilds: &regBuilds, resBuilds: &resBuilds}

	SetBuilder(mb)
	if regBuilds != 1 || resBuilds != 1 {
		t.Fatalf("builds = %d/%d after SetBuilder, want 1/1", regBuilds, resBuilds)
	}
	SetConfig(config.NewConfig(config.WithWalk(walk.Memoized)))
	if regBuilds != 2 || resBuilds != 2 {
		t.Fatalf("builds = %d/%d after SetConfig, want 2/2", regBuilds, resBuilds)
	}
	if _, ok := Lookup("TeachingLibrarian"); !ok {
		t.Fatal("entries lost while switching builders")
	}
}

type extCfg struct {
	Tag string
}

func TestSetExt_And_ExtAs(t *testing.T) {
	resetState(t)

	if _, ok := ExtAs[extCfg](); ok {
		t.Fatal("no extension config should be set initially")
	}
	SetExt(extCfg{Tag: "fleet"})
	got, ok := ExtAs[extCfg]()
	if !ok || got.Tag != "fleet" {
		t.Fatalf("ExtAs = (%+v,%v), want the stored extension", got, ok)
	}
	// Wrong type requested.
	if _, ok := ExtAs[string](); ok {
		t.Fatal("mismatched extension type must not be returned")
	}
}

// TestConcurrentQueriesAndReconfig hammers global queries while another
// goroutine keeps swapping the configuration. Readers must always observe a
// complete snapshot.
func TestConcurrentQueriesAndReconfig(t *testing.T) {
	resetState(t)
	registerSchool(t)

	tl, _ := Lookup("TeachingLibrarian")
	staff, _ := Lookup("StaffMember")
	sailboat, _ := Lookup("Sailboat")

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 3000; i++ {
				if !DerivesFrom(tl, staff) {
					t.Error("derives-from broke during reconfiguration")
					return
				}
				if DerivesFrom(tl, sailboat) {
					t.Error("false positive during reconfiguration")
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		policies := []walk.Policy{walk.Naive, walk.Memoized, walk.Guarded}
		for i := 0; i < 300; i++ {
			SetConfig(config.NewConfig(config.WithWalk(policies[i%len(policies)])))
		}
	}()

	wg.Wait()

	// Identity survived every rebuild.
	after, _ := Lookup("TeachingLibrarian")
	if after != tl {
		t.Fatal("descriptor identity lost under concurrent reconfiguration")
	}
}
