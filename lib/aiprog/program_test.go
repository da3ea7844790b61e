// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aiprog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/aiprog-tools/aiprog/lib/aamp"
)

func TestNew_RejectsMissingSegment(t *testing.T) {
	t.Parallel()
	pio := buildPIO(nil, nil, nil, nil, nil)
	// Remove the Behavior segment.
	pio.Root.Lists.RemoveAt(pio.Root.Lists.Index(aamp.Hash("Behavior")))

	_, err := New(pio, nil, nil, nil)
	if !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("New = %v, want ErrInvalidContainer", err)
	}
}

func TestNew_RejectsMissingDemoIdx(t *testing.T) {
	t.Parallel()
	pio := buildPIO(nil, nil, nil, nil, nil)
	pio.Root.Objects.RemoveAt(pio.Root.Objects.Index(aamp.Hash("DemoAIActionIdx")))

	_, err := New(pio, nil, nil, nil)
	if !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("New = %v, want ErrInvalidContainer", err)
	}
}

func TestOffsets_Monotonic(t *testing.T) {
	t.Parallel()
	p := newProgram(t, buildPIO(
		[]rec{{class: "A", children: []slot{}}, {class: "B", children: []slot{}}},
		[]rec{{class: "C"}},
		[]rec{{class: "D"}, {class: "E"}, {class: "F"}},
		[]rec{{class: "G"}},
		nil,
	))

	actions, behaviors, queries := p.Offsets()
	if actions != 2 || behaviors != 3 || queries != 6 {
		t.Fatalf("Offsets = (%d, %d, %d), want (2, 3, 6)", actions, behaviors, queries)
	}
	if total := p.Len(); !(0 <= actions && actions <= behaviors && behaviors <= queries && queries <= total) {
		t.Fatalf("offsets not monotonic: (%d, %d, %d), total %d", actions, behaviors, queries, total)
	}
}

func TestLocate_MapsGlobalToSegment(t *testing.T) {
	t.Parallel()
	p := newProgram(t, buildPIO(
		[]rec{{class: "A", children: []slot{}}, {class: "B", children: []slot{}}},
		[]rec{{class: "C"}},
		[]rec{{class: "D"}},
		[]rec{{class: "E"}},
		nil,
	))

	tests := []struct {
		idx     int
		segment Segment
		local   int
	}{
		{0, SegmentAI, 0},
		{1, SegmentAI, 1},
		{2, SegmentAction, 0},
		{3, SegmentBehavior, 0},
		{4, SegmentQuery, 0},
	}
	for _, tt := range tests {
		segment, local, err := p.Locate(tt.idx)
		if err != nil {
			t.Fatalf("Locate(%d): %v", tt.idx, err)
		}
		if segment != tt.segment || local != tt.local {
			t.Errorf("Locate(%d) = (%s, %d), want (%s, %d)", tt.idx, segment, local, tt.segment, tt.local)
		}
	}
}

func TestLocate_OutOfRange(t *testing.T) {
	t.Parallel()
	p := newProgram(t, buildPIO([]rec{{class: "A", children: []slot{}}}, nil, nil, nil, nil))

	for _, idx := range []int{-1, 1, 100} {
		if _, _, err := p.Locate(idx); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Locate(%d) = %v, want ErrOutOfRange", idx, err)
		}
	}
	if _, err := p.RecordAt(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("RecordAt(1) = %v, want ErrOutOfRange", err)
	}
}

func TestRecords_ConcatenationOrder(t *testing.T) {
	t.Parallel()
	p := newProgram(t, buildPIO(
		[]rec{{name: "a", class: "A", children: []slot{}}},
		[]rec{{name: "b", class: "B"}},
		[]rec{{name: "c", class: "C"}},
		[]rec{{name: "d", class: "D"}},
		nil,
	))

	records := p.Records()
	if len(records) != 4 {
		t.Fatalf("len(Records) = %d, want 4", len(records))
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		name, err := p.DisplayName(i)
		if err != nil {
			t.Fatalf("DisplayName(%d): %v", i, err)
		}
		if name != want {
			t.Errorf("DisplayName(%d) = %q, want %q", i, name, want)
		}
	}
}

func TestFindReferences_AllKinds(t *testing.T) {
	t.Parallel()
	// AI_0 references AI_1 as a child and Behavior 0 (global 3).
	// Action_0 references Behavior 1 (global 4). Demo slot points at
	// the Action (global 2).
	p := newProgram(t, buildPIO(
		[]rec{
			{class: "A", children: []slot{{"Wait", 1}}, behaviors: []slot{{"Guard", 0}}},
			{class: "B", children: []slot{}},
		},
		[]rec{{class: "C", behaviors: []slot{{"Guard", 1}}}},
		[]rec{{class: "D"}, {class: "E"}},
		nil,
		[]slot{{"Demo_Wait", 2}},
	))

	refs, err := p.FindReferences(1)
	if err != nil {
		t.Fatalf("FindReferences(1): %v", err)
	}
	if _, ok := refs.AIChildren[RefKey{Record: 0, Param: aamp.Hash("Wait")}]; !ok {
		t.Error("missing AI child reference 0/Wait → 1")
	}
	if refs.Total() != 1 {
		t.Errorf("FindReferences(1).Total = %d, want 1", refs.Total())
	}

	refs, err = p.FindReferences(3)
	if err != nil {
		t.Fatalf("FindReferences(3): %v", err)
	}
	if _, ok := refs.AIBehaviors[RefKey{Record: 0, Param: aamp.Hash("Guard")}]; !ok {
		t.Error("missing AI behavior reference 0/Guard → 3")
	}
	if refs.Total() != 1 {
		t.Errorf("FindReferences(3).Total = %d, want 1", refs.Total())
	}

	refs, err = p.FindReferences(4)
	if err != nil {
		t.Fatalf("FindReferences(4): %v", err)
	}
	if _, ok := refs.ActionBehaviors[RefKey{Record: 2, Param: aamp.Hash("Guard")}]; !ok {
		t.Error("missing Action behavior reference 2/Guard → 4")
	}

	refs, err = p.FindReferences(2)
	if err != nil {
		t.Fatalf("FindReferences(2): %v", err)
	}
	if _, ok := refs.Demos[aamp.Hash("Demo_Wait")]; !ok {
		t.Error("missing demo reference Demo_Wait → 2")
	}
}

func TestFindReferences_ClearedSlotsDoNotAlias(t *testing.T) {
	t.Parallel()
	// A -1 behavior slot must not read as a reference to the record
	// just below the Behavior segment (whose Behavior-local value
	// would also be -1).
	p := newProgram(t, buildPIO(
		[]rec{{class: "A", children: []slot{}, behaviors: []slot{{"Guard", -1}}}},
		[]rec{{class: "B"}},
		[]rec{{class: "C"}},
		nil,
		nil,
	))

	// Global 1 is the Action, one below behaviors_offset 2.
	refs, err := p.FindReferences(1)
	if err != nil {
		t.Fatalf("FindReferences(1): %v", err)
	}
	if refs.Total() != 0 {
		t.Errorf("FindReferences(1).Total = %d, want 0", refs.Total())
	}
}

func TestFindReferences_MissingChildIdx(t *testing.T) {
	t.Parallel()
	// RootAI declares children in the catalog, so an AI of that class
	// without a ChildIdx object is malformed.
	p := newProgram(t, buildPIO([]rec{{class: "RootAI"}}, nil, nil, nil, nil))

	_, err := p.FindReferences(0)
	if !errors.Is(err, ErrMissingObject) {
		t.Fatalf("FindReferences = %v, want ErrMissingObject", err)
	}
}

func TestFindReferences_ChildlessClassMayLackChildIdx(t *testing.T) {
	t.Parallel()
	// IsTerrorTime declares no children; classes the catalog doesn't
	// know are treated the same way.
	p := newProgram(t, buildPIO(
		[]rec{{class: "IsTerrorTime"}, {class: "UnknownClass"}},
		nil, nil, nil, nil,
	))

	if _, err := p.FindReferences(0); err != nil {
		t.Fatalf("FindReferences: %v", err)
	}
}

func TestRoots_UnreferencedAIRecords(t *testing.T) {
	t.Parallel()
	// AI [A, B] with A.ChildIdx = {slot: 1}: only A is a root.
	p := newProgram(t, buildPIO(
		[]rec{
			{name: "A", class: "X", children: []slot{{"Wait", 1}}},
			{name: "B", class: "Y", children: []slot{{"Wait", -1}}},
		},
		nil, nil, nil, nil,
	))

	roots, err := p.Roots()
	if err != nil {
		t.Fatalf("Roots: %v", err)
	}
	if len(roots) != 1 || roots[0] != 0 {
		t.Fatalf("Roots = %v, want [0]", roots)
	}

	forest, err := p.Tree()
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if len(forest) != 1 {
		t.Fatalf("len(Tree) = %d, want 1", len(forest))
	}
	root := forest[0]
	if root.Name != "A" || root.Index != 0 {
		t.Errorf("root = %q/%d, want A/0", root.Name, root.Index)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "B" || root.Children[0].Index != 1 {
		t.Fatalf("root children = %+v, want [B/1]", root.Children)
	}
}

// forestString renders a forest by node content, for failure
// messages.
func forestString(forest []*TreeNode) string {
	var b strings.Builder
	var walk func(node *TreeNode, depth int)
	walk = func(node *TreeNode, depth int) {
		fmt.Fprintf(&b, "%s%s/%d\n", strings.Repeat("  ", depth), node.Name, node.Index)
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range forest {
		walk(root, 0)
	}
	return b.String()
}

func TestTree_Idempotent(t *testing.T) {
	t.Parallel()
	p := newProgram(t, buildPIO(
		[]rec{
			{name: "A", class: "X", children: []slot{{"Wait", 1}, {"Battle", -1}}},
			{name: "B", class: "Y", children: []slot{}},
		},
		nil, nil, nil, nil,
	))

	first, err := p.Tree()
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	second, err := p.Tree()
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Tree not idempotent:\n first: %s\nsecond: %s", forestString(first), forestString(second))
	}

	roots1, err := p.Roots()
	if err != nil {
		t.Fatalf("Roots: %v", err)
	}
	roots2, err := p.Roots()
	if err != nil {
		t.Fatalf("Roots: %v", err)
	}
	if !reflect.DeepEqual(roots1, roots2) {
		t.Errorf("Roots not idempotent: %v then %v", roots1, roots2)
	}
}

func TestTree_CycleDetected(t *testing.T) {
	t.Parallel()
	// A → B → A is a cycle; both records are referenced, so neither
	// is a root. BuildTree from either must fail rather than recurse
	// without bound.
	p := newProgram(t, buildPIO(
		[]rec{
			{name: "A", class: "X", children: []slot{{"Wait", 1}}},
			{name: "B", class: "Y", children: []slot{{"Battle", 0}}},
		},
		nil, nil, nil, nil,
	))

	if _, err := p.BuildTree(0); !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("BuildTree(0) = %v, want ErrCycleDetected", err)
	}
}

func TestTree_DiamondIsNotACycle(t *testing.T) {
	t.Parallel()
	// A references B twice (two slots); B appears once per path.
	p := newProgram(t, buildPIO(
		[]rec{
			{name: "A", class: "X", children: []slot{{"Wait", 1}, {"Battle", 1}}},
			{name: "B", class: "Y", children: []slot{}},
		},
		nil, nil, nil, nil,
	))

	node, err := p.BuildTree(0)
	if err != nil {
		t.Fatalf("BuildTree(0): %v", err)
	}
	if len(node.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(node.Children))
	}
}

func TestDisplayName_Resolution(t *testing.T) {
	t.Parallel()
	// 待機 translates to Wait through the bundled map; a record
	// without a Name falls back to its translated ClassName; an
	// untranslated name passes through unchanged.
	p := newProgram(t, buildPIO(
		[]rec{
			{name: "待機", class: "X", children: []slot{}},
			{class: "SelectBattle", children: []slot{}},
			{name: "Custom", class: "Y", children: []slot{}},
		},
		nil, nil, nil, nil,
	))

	tests := []struct {
		idx  int
		want string
	}{
		{0, "Wait"},
		{1, "SelectBattle"},
		{2, "Custom"},
	}
	for _, tt := range tests {
		got, err := p.DisplayName(tt.idx)
		if err != nil {
			t.Fatalf("DisplayName(%d): %v", tt.idx, err)
		}
		if got != tt.want {
			t.Errorf("DisplayName(%d) = %q, want %q", tt.idx, got, tt.want)
		}
	}
}

func TestDisplayName_Unresolvable(t *testing.T) {
	t.Parallel()
	pio := buildPIO([]rec{{class: "X", children: []slot{}}}, nil, nil, nil, nil)
	// Strip the ClassName parameter, leaving an empty Def.
	record, _ := pio.Root.List("AI")
	_, ai := record.Lists.At(0)
	def, _ := ai.Object("Def")
	def.Params.RemoveAt(def.Params.Index(aamp.Hash("ClassName")))

	p := newProgram(t, pio)
	if _, err := p.DisplayName(0); !errors.Is(err, ErrUnresolvableName) {
		t.Fatalf("DisplayName = %v, want ErrUnresolvableName", err)
	}
}

func TestParseSegment(t *testing.T) {
	t.Parallel()
	for _, s := range Segments {
		parsed, err := ParseSegment(s.String())
		if err != nil {
			t.Fatalf("ParseSegment(%s): %v", s, err)
		}
		if parsed != s {
			t.Errorf("ParseSegment(%s) = %v", s, parsed)
		}
	}
	if _, err := ParseSegment("Behaviour"); err == nil {
		t.Error("ParseSegment(Behaviour) succeeded, want error")
	}
}
