// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aiprog

import (
	"fmt"

	"github.com/aiprog-tools/aiprog/lib/aamp"
	"github.com/aiprog-tools/aiprog/lib/aidef"
	"github.com/aiprog-tools/aiprog/lib/names"
)

// Program is the consistency engine over one parsed AI program
// archive. It owns the four segments and the DemoAIActionIdx object
// and is the only code that mutates record structure; parameter-level
// edits go straight to the aamp types.
//
// The name table, class catalog, and localizer are read-only
// collaborators injected at construction.
type Program struct {
	pio    *aamp.ParameterIO
	names  *names.Table
	defs   *aidef.Catalog
	locale *aidef.Localizer
}

// New validates the archive and wraps it in a Program. The archive
// must carry all four segment lists and the top-level DemoAIActionIdx
// object; anything else fails with [ErrInvalidContainer] and the
// archive is rejected before the engine ever touches it.
func New(pio *aamp.ParameterIO, table *names.Table, catalog *aidef.Catalog, localizer *aidef.Localizer) (*Program, error) {
	for _, s := range Segments {
		if _, ok := pio.Root.List(s.String()); !ok {
			return nil, fmt.Errorf("%w: missing %s segment", ErrInvalidContainer, s)
		}
	}
	if _, ok := pio.Root.Object("DemoAIActionIdx"); !ok {
		return nil, fmt.Errorf("%w: missing DemoAIActionIdx", ErrInvalidContainer)
	}
	return &Program{pio: pio, names: table, defs: catalog, locale: localizer}, nil
}

// PIO returns the underlying archive, for serialization.
func (p *Program) PIO() *aamp.ParameterIO {
	return p.pio
}

// Defs returns the class catalog the program was constructed with,
// for class pickers.
func (p *Program) Defs() *aidef.Catalog {
	return p.defs
}

// Names returns the reverse name table the program was constructed
// with.
func (p *Program) Names() *names.Table {
	return p.names
}

// segment returns a segment's container list. New guarantees
// presence.
func (p *Program) segment(s Segment) *aamp.List {
	list, _ := p.pio.Root.List(s.String())
	return list
}

// demoIdx returns the DemoAIActionIdx object. New guarantees
// presence.
func (p *Program) demoIdx() *aamp.Object {
	obj, _ := p.pio.Root.Object("DemoAIActionIdx")
	return obj
}

// SegmentLen returns the number of records in one segment.
func (p *Program) SegmentLen(s Segment) int {
	return p.segment(s).Lists.Len()
}

// Len returns the total record count across all four segments, the
// upper bound of the global index space.
func (p *Program) Len() int {
	total := 0
	for _, s := range Segments {
		total += p.SegmentLen(s)
	}
	return total
}

// Offsets returns the global indices at which the Action, Behavior,
// and Query segments start. Recomputed from current segment sizes on
// every call — segment sizes change under mutation and a cached copy
// would go stale.
func (p *Program) Offsets() (actions, behaviors, queries int) {
	actions = p.SegmentLen(SegmentAI)
	behaviors = actions + p.SegmentLen(SegmentAction)
	queries = behaviors + p.SegmentLen(SegmentBehavior)
	return actions, behaviors, queries
}

// Locate converts a global index to its segment and segment-local
// index. Fails with [ErrOutOfRange] when idx is not below the current
// total.
func (p *Program) Locate(idx int) (Segment, int, error) {
	if idx < 0 {
		return 0, 0, fmt.Errorf("record %d: %w", idx, ErrOutOfRange)
	}
	local := idx
	for _, s := range Segments {
		n := p.SegmentLen(s)
		if local < n {
			return s, local, nil
		}
		local -= n
	}
	return 0, 0, fmt.Errorf("record %d: %w (total %d)", idx, ErrOutOfRange, p.Len())
}

// RecordAt returns the record at a global index. The returned list is
// the live record; parameter edits through it are visible to the
// engine.
func (p *Program) RecordAt(idx int) (*aamp.List, error) {
	s, local, err := p.Locate(idx)
	if err != nil {
		return nil, err
	}
	_, record := p.segment(s).Lists.At(local)
	return record, nil
}

// Records returns every record in global index order: the
// concatenation AI ++ Action ++ Behavior ++ Query. The slice is
// freshly allocated; the records are live.
func (p *Program) Records() []*aamp.List {
	out := make([]*aamp.List, 0, p.Len())
	for _, s := range Segments {
		lists := &p.segment(s).Lists
		for i := 0; i < lists.Len(); i++ {
			_, record := lists.At(i)
			out = append(out, record)
		}
	}
	return out
}
