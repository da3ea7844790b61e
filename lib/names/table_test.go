// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package names

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aiprog-tools/aiprog/lib/aamp"
)

func TestNew_BundledNames(t *testing.T) {
	t.Parallel()
	table, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"AI", "Def", "ChildIdx", "DemoAIActionIdx", "Demo_Wait", "RootAI"} {
		got, ok := table.Name(aamp.Hash(name))
		if !ok {
			t.Errorf("bundled name %q not registered", name)
			continue
		}
		if got != name {
			t.Errorf("Name(Hash(%q)) = %q", name, got)
		}
	}
}

func TestNew_NumberedNames(t *testing.T) {
	t.Parallel()
	table, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"AI_0", "Action_42", "Behavior_7", "Query_1000"} {
		if got, ok := table.Name(aamp.Hash(name)); !ok || got != name {
			t.Errorf("Name(Hash(%q)) = %q, %t", name, got, ok)
		}
	}
	if _, ok := table.Name(aamp.Hash("AI_1001")); ok {
		t.Error("numbered name beyond the precomputed limit is registered")
	}
}

func TestDisplay_FallsBackToHashLiteral(t *testing.T) {
	t.Parallel()
	table, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := table.Display(aamp.Hash("Wait")); got != "Wait" {
		t.Errorf("Display(known) = %q, want Wait", got)
	}
	if got := table.Display(0xdeadbeef); got != "0xdeadbeef" {
		t.Errorf("Display(unknown) = %q, want 0xdeadbeef", got)
	}
}

func TestAdd_FirstRegistrationWins(t *testing.T) {
	t.Parallel()
	table := &Table{names: make(map[uint32]string)}
	table.Add("Wait")
	// A second string with the same hash must not displace the first.
	// Real collisions are rare; simulate by re-adding under the same
	// spelling and checking idempotence.
	table.Add("Wait")
	if got, _ := table.Name(aamp.Hash("Wait")); got != "Wait" {
		t.Errorf("Name = %q, want Wait", got)
	}
}

func TestAddFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "extra.jsonc")
	const doc = `// extra names
["CustomSlot", "MyBossAI"]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	table, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := table.AddFile(path); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if got, ok := table.Name(aamp.Hash("CustomSlot")); !ok || got != "CustomSlot" {
		t.Errorf("Name(CustomSlot) = %q, %t", got, ok)
	}

	if err := table.AddFile(filepath.Join(t.TempDir(), "absent.jsonc")); err == nil {
		t.Error("AddFile succeeded on missing file")
	}
}

func TestHarvest(t *testing.T) {
	t.Parallel()
	pio := aamp.NewParameterIO()
	def := &aamp.Object{}
	def.Params.Put(aamp.Hash("Name"), aamp.StringRef("BossPhase2"))
	def.Params.Put(aamp.Hash("ClassName"), aamp.String32("MyBossClass"))
	def.Params.Put(aamp.Hash("GroupName"), aamp.StringRef(""))
	def.Params.Put(aamp.Hash("WaitFrame"), aamp.Int(30))
	record := &aamp.List{}
	record.Objects.Put(aamp.Hash("Def"), def)
	segment := &aamp.List{}
	segment.Lists.Put(aamp.Hash("AI_0"), record)
	pio.Root.Lists.Put(aamp.Hash("AI"), segment)

	table, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	table.Harvest(pio)

	for _, name := range []string{"BossPhase2", "MyBossClass"} {
		if got, ok := table.Name(aamp.Hash(name)); !ok || got != name {
			t.Errorf("harvested name %q: Name = %q, %t", name, got, ok)
		}
	}
	// Empty strings are not worth registering.
	if got, ok := table.Name(aamp.Hash("")); ok {
		t.Errorf("empty string registered as %q", got)
	}
}
