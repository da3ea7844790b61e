// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aiprog

import (
	"fmt"
	"testing"

	"github.com/aiprog-tools/aiprog/lib/aamp"
	"github.com/aiprog-tools/aiprog/lib/aidef"
	"github.com/aiprog-tools/aiprog/lib/names"
)

// slot is an ordered name→value pair for building index objects.
// Fixtures use slices of slots rather than maps so stored slot order
// is deterministic.
type slot struct {
	name  string
	value int32
}

// rec describes one fixture record.
type rec struct {
	name      string // Def.Name; empty means no Name parameter.
	class     string // Def.ClassName.
	children  []slot // ChildIdx slots; nil means no ChildIdx object.
	behaviors []slot // BehaviorIdx slots; nil means no BehaviorIdx object.
}

func (r rec) build() *aamp.List {
	record := &aamp.List{}
	def := &aamp.Object{}
	if r.name != "" {
		def.Params.Put(aamp.Hash("Name"), aamp.StringRef(r.name))
	}
	def.Params.Put(aamp.Hash("ClassName"), aamp.String32(r.class))
	record.Objects.Put(aamp.Hash("Def"), def)
	if r.children != nil {
		childIdx := &aamp.Object{}
		for _, s := range r.children {
			childIdx.Params.Put(aamp.Hash(s.name), aamp.Int(s.value))
		}
		record.Objects.Put(aamp.Hash("ChildIdx"), childIdx)
	}
	if r.behaviors != nil {
		behaviorIdx := &aamp.Object{}
		for _, s := range r.behaviors {
			behaviorIdx.Params.Put(aamp.Hash(s.name), aamp.Int(s.value))
		}
		record.Objects.Put(aamp.Hash("BehaviorIdx"), behaviorIdx)
	}
	return record
}

// buildPIO assembles an archive with the four segments and the
// DemoAIActionIdx object. Records are keyed by the synthetic
// "<Segment>_<n>" convention.
func buildPIO(ai, action, behavior, query []rec, demos []slot) *aamp.ParameterIO {
	pio := aamp.NewParameterIO()
	segments := map[string][]rec{
		"AI": ai, "Action": action, "Behavior": behavior, "Query": query,
	}
	for _, name := range []string{"AI", "Action", "Behavior", "Query"} {
		list := &aamp.List{}
		for i, r := range segments[name] {
			list.Lists.Put(aamp.Hash(fmt.Sprintf("%s_%d", name, i)), r.build())
		}
		pio.Root.Lists.Put(aamp.Hash(name), list)
	}
	demo := &aamp.Object{}
	for _, s := range demos {
		demo.Params.Put(aamp.Hash(s.name), aamp.Int(s.value))
	}
	pio.Root.Objects.Put(aamp.Hash("DemoAIActionIdx"), demo)
	return pio
}

// newProgram wraps buildPIO output in an engine with the bundled
// services.
func newProgram(t *testing.T, pio *aamp.ParameterIO) *Program {
	t.Helper()
	table, err := names.New()
	if err != nil {
		t.Fatalf("names.New: %v", err)
	}
	catalog, err := aidef.NewCatalog()
	if err != nil {
		t.Fatalf("aidef.NewCatalog: %v", err)
	}
	localizer, err := aidef.NewLocalizer()
	if err != nil {
		t.Fatalf("aidef.NewLocalizer: %v", err)
	}
	program, err := New(pio, table, catalog, localizer)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return program
}

// childValue reads one ChildIdx slot of the record at a global index.
func childValue(t *testing.T, p *Program, idx int, slotName string) int32 {
	t.Helper()
	record, err := p.RecordAt(idx)
	if err != nil {
		t.Fatalf("RecordAt(%d): %v", idx, err)
	}
	childIdx, ok := record.Object("ChildIdx")
	if !ok {
		t.Fatalf("record %d has no ChildIdx", idx)
	}
	param, ok := childIdx.Params.Get(aamp.Hash(slotName))
	if !ok {
		t.Fatalf("record %d has no ChildIdx slot %q", idx, slotName)
	}
	v, err := param.AsInt()
	if err != nil {
		t.Fatalf("record %d ChildIdx slot %q: %v", idx, slotName, err)
	}
	return v
}

// behaviorValue reads one BehaviorIdx slot of the record at a global
// index.
func behaviorValue(t *testing.T, p *Program, idx int, slotName string) int32 {
	t.Helper()
	record, err := p.RecordAt(idx)
	if err != nil {
		t.Fatalf("RecordAt(%d): %v", idx, err)
	}
	behaviorIdx, ok := record.Object("BehaviorIdx")
	if !ok {
		t.Fatalf("record %d has no BehaviorIdx", idx)
	}
	param, ok := behaviorIdx.Params.Get(aamp.Hash(slotName))
	if !ok {
		t.Fatalf("record %d has no BehaviorIdx slot %q", idx, slotName)
	}
	v, err := param.AsInt()
	if err != nil {
		t.Fatalf("record %d BehaviorIdx slot %q: %v", idx, slotName, err)
	}
	return v
}

// demoValue reads one DemoAIActionIdx slot.
func demoValue(t *testing.T, p *Program, slotName string) int32 {
	t.Helper()
	obj, ok := p.PIO().Root.Object("DemoAIActionIdx")
	if !ok {
		t.Fatal("archive has no DemoAIActionIdx")
	}
	param, ok := obj.Params.Get(aamp.Hash(slotName))
	if !ok {
		t.Fatalf("no DemoAIActionIdx slot %q", slotName)
	}
	v, err := param.AsInt()
	if err != nil {
		t.Fatalf("DemoAIActionIdx slot %q: %v", slotName, err)
	}
	return v
}
