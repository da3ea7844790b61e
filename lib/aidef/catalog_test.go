// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aidef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aiprog-tools/aiprog/lib/aamp"
)

func TestNewCatalog_BundledClasses(t *testing.T) {
	t.Parallel()
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if got := len(catalog.Classes("AI")); got == 0 {
		t.Fatal("bundled catalog has no AI classes")
	}
	def, ok := catalog.Class("AI", "RootAI")
	if !ok {
		t.Fatal("bundled catalog missing AI class RootAI")
	}
	if len(def.Children) == 0 {
		t.Error("RootAI declares no children")
	}
	if _, ok := catalog.Class("Action", "RootAI"); ok {
		t.Error("RootAI found in Action segment")
	}
}

func TestHasChildren(t *testing.T) {
	t.Parallel()
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if !catalog.HasChildren("AI", "RootAI") {
		t.Error("HasChildren(AI, RootAI) = false")
	}
	if catalog.HasChildren("Action", "WaitAction") {
		t.Error("HasChildren(Action, WaitAction) = true")
	}
	// Unknown classes never require children.
	if catalog.HasChildren("AI", "NoSuchClass") {
		t.Error("HasChildren(AI, NoSuchClass) = true")
	}
}

func TestBlankRecord_AIShape(t *testing.T) {
	t.Parallel()
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	record, err := catalog.BlankRecord("AI", "RootAI")
	if err != nil {
		t.Fatalf("BlankRecord: %v", err)
	}

	def, ok := record.Object("Def")
	if !ok {
		t.Fatal("seeded record has no Def")
	}
	if got, _ := def.Params.Get(aamp.Hash("Name")); got != aamp.StringRef("") {
		t.Errorf("Def.Name = %v, want empty str", got)
	}
	if got, _ := def.Params.Get(aamp.Hash("ClassName")); got != aamp.String32("RootAI") {
		t.Errorf("Def.ClassName = %v", got)
	}
	if got, _ := def.Params.Get(aamp.Hash("GroupName")); got != aamp.StringRef("") {
		t.Errorf("Def.GroupName = %v, want empty str", got)
	}

	childIdx, ok := record.Object("ChildIdx")
	if !ok {
		t.Fatal("seeded record has no ChildIdx")
	}
	classDef, _ := catalog.Class("AI", "RootAI")
	if childIdx.Params.Len() != len(classDef.Children) {
		t.Fatalf("ChildIdx has %d slots, class declares %d", childIdx.Params.Len(), len(classDef.Children))
	}
	for _, child := range classDef.Children {
		p, ok := childIdx.Params.Get(aamp.Hash(child))
		if !ok {
			t.Errorf("ChildIdx missing slot %q", child)
			continue
		}
		if v, err := p.AsInt(); err != nil || v != -1 {
			t.Errorf("slot %q = %v, want -1", child, p)
		}
	}

	sinst, ok := record.Object("SInst")
	if !ok {
		t.Fatal("seeded record has no SInst")
	}
	if got, _ := sinst.Params.Get(aamp.Hash("NoTargetTime")); got != aamp.Float(5) {
		t.Errorf("SInst.NoTargetTime = %v, want 5.0", got)
	}
	if got, _ := sinst.Params.Get(aamp.Hash("IsIgnoreSmallHit")); got != aamp.Bool(false) {
		t.Errorf("SInst.IsIgnoreSmallHit = %v, want false", got)
	}
}

func TestBlankRecord_QueryOmitsNameFields(t *testing.T) {
	t.Parallel()
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	record, err := catalog.BlankRecord("Query", "NearTarget")
	if err != nil {
		t.Fatalf("BlankRecord: %v", err)
	}
	def, _ := record.Object("Def")
	if def.Params.Has(aamp.Hash("Name")) {
		t.Error("Query record seeded with a Name field")
	}
	if _, ok := record.Object("ChildIdx"); ok {
		t.Error("childless class seeded with ChildIdx")
	}
}

func TestBlankRecord_UnknownClass(t *testing.T) {
	t.Parallel()
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, err := catalog.BlankRecord("AI", "NoSuchClass"); err == nil {
		t.Fatal("BlankRecord succeeded for unknown class")
	}
}

func TestLoadCatalog_Validation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	write := func(name, doc string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		return path
	}

	good := write("good.jsonc", `// custom catalog
{"AI": [{"class": "MyAI", "children": ["A"], "params": [{"name": "X", "type": "int", "default": 1}]}]}`)
	catalog, err := LoadCatalog(good)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if !catalog.HasChildren("AI", "MyAI") {
		t.Error("loaded class lost its children")
	}

	dup := write("dup.jsonc", `{"AI": [{"class": "A"}, {"class": "A"}]}`)
	if _, err := LoadCatalog(dup); err == nil {
		t.Error("LoadCatalog accepted duplicate class names")
	}

	unnamed := write("unnamed.jsonc", `{"AI": [{"children": ["A"]}]}`)
	if _, err := LoadCatalog(unnamed); err == nil {
		t.Error("LoadCatalog accepted a class with no name")
	}

	badType := write("badtype.jsonc", `{"AI": [{"class": "A", "params": [{"name": "X", "type": "vec5", "default": 0}]}]}`)
	if _, err := LoadCatalog(badType); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	// Bad parameter types surface on seeding, not on load.
	loaded, _ := LoadCatalog(badType)
	if _, err := loaded.BlankRecord("AI", "A"); err == nil {
		t.Error("BlankRecord accepted unknown parameter type")
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()
	localizer, err := NewLocalizer()
	if err != nil {
		t.Fatalf("NewLocalizer: %v", err)
	}
	if got := localizer.Translate("待機"); got != "Wait" {
		t.Errorf("Translate(待機) = %q, want Wait", got)
	}
	if got := localizer.Translate("AlreadyEnglish"); got != "AlreadyEnglish" {
		t.Errorf("Translate miss = %q, want identity", got)
	}
}

func TestLoadLocalizer(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "extra.jsonc")
	if err := os.WriteFile(path, []byte(`{"攻撃": "Attack"}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	localizer, err := LoadLocalizer(path)
	if err != nil {
		t.Fatalf("LoadLocalizer: %v", err)
	}
	if got := localizer.Translate("攻撃"); got != "Attack" {
		t.Errorf("Translate(攻撃) = %q, want Attack", got)
	}
	if _, err := LoadLocalizer(filepath.Join(t.TempDir(), "absent.jsonc")); err == nil {
		t.Error("LoadLocalizer succeeded on missing file")
	}
}
