// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aiprog

import (
	"fmt"

	"github.com/aiprog-tools/aiprog/lib/aamp"
)

// Reindex rewrites every reference currently pointing at global index
// old to point at new instead, translated into each slot's own space
// (raw global for ChildIdx and DemoAIActionIdx, Behavior-local for
// BehaviorIdx). new = -1 clears the references. Both the scan and the
// write use the current segment offsets; Insert and Delete use the
// epoch-aware variant below because they rewrite across a structural
// change.
func (p *Program) Reindex(old int, new int32) error {
	_, behaviorsOffset, _ := p.Offsets()
	return p.reindex(old, new, behaviorsOffset, behaviorsOffset)
}

// reindex is Reindex with explicit Behavior-segment offsets for the
// scan and write sides.
//
// BehaviorIdx slots store Behavior-local values, so interpreting and
// rewriting them needs an offset — and during Insert and Delete the
// offset on the two sides differs. The shift walk names records by
// their pre-mutation global indices, so stored values must be scanned
// with the pre-mutation offset; the values written must be correct
// once the mutation has completed, so they are translated with the
// post-mutation offset. Inserting an AI record, for example, shifts
// both a Behavior record's global index and the Behavior segment
// start by one: its local index is unchanged, and with the two
// offsets split this falls out as write(new-post) == scanned local.
func (p *Program) reindex(old int, new int32, scanOffset, writeOffset int) error {
	refs, err := p.findReferencesAt(old, scanOffset)
	if err != nil {
		return err
	}

	demo := p.demoIdx()
	for key := range refs.Demos {
		demo.Params.Put(key, aamp.Int(new))
	}

	for ref := range refs.AIChildren {
		record, err := p.RecordAt(ref.Record)
		if err != nil {
			return err
		}
		childIdx, _ := record.Object("ChildIdx")
		childIdx.Params.Put(ref.Param, aamp.Int(new))
	}

	behaviorLocal := new
	if new >= 0 {
		behaviorLocal = new - int32(writeOffset)
	}
	for _, set := range []map[RefKey]struct{}{refs.AIBehaviors, refs.ActionBehaviors} {
		for ref := range set {
			record, err := p.RecordAt(ref.Record)
			if err != nil {
				return err
			}
			behaviorIdx, _ := record.Object("BehaviorIdx")
			behaviorIdx.Params.Put(ref.Param, aamp.Int(behaviorLocal))
		}
	}
	return nil
}

// Insert seeds a new record of the given class from the catalog and
// appends it at the tail of the segment, shifting every reference to
// a record in a later segment up by one. Returns the new record's
// global index.
//
// The shift walks candidate indices in descending order: each
// Reindex(i, i+1) must not re-match a reference the previous step
// just rewrote.
func (p *Program) Insert(segment Segment, class string) (int, error) {
	record, err := p.defs.BlankRecord(segment.String(), class)
	if err != nil {
		return 0, err
	}
	if err := p.checkResolvable(); err != nil {
		return 0, err
	}

	actions, behaviors, queries := p.Offsets()
	total := p.Len()
	var insertAt int
	switch segment {
	case SegmentAI:
		insertAt = actions
	case SegmentAction:
		insertAt = behaviors
	case SegmentBehavior:
		insertAt = queries
	default:
		insertAt = total
	}

	// Post-insert Behavior offset: grows only when the new record
	// lands in AI or Action.
	writeOffset := behaviors
	if segment == SegmentAI || segment == SegmentAction {
		writeOffset++
	}
	for i := total - 1; i >= insertAt; i-- {
		if err := p.reindex(i, int32(i+1), behaviors, writeOffset); err != nil {
			return 0, err
		}
	}

	seg := p.segment(segment)
	local := seg.Lists.Len()
	key := aamp.Hash(fmt.Sprintf("%s_%d", segment, local))
	for n := local + 1; seg.Lists.Has(key); n++ {
		key = aamp.Hash(fmt.Sprintf("%s_%d", segment, n))
	}
	seg.Lists.Put(key, record)
	p.renumber(segment)

	return insertAt, nil
}

// Delete removes the record at global index idx. References to it are
// forced to -1 rather than the deletion being rejected. Every
// reference to a later record shifts down by one, walked in ascending
// order so no reference is shifted twice.
func (p *Program) Delete(idx int) error {
	segment, local, err := p.Locate(idx)
	if err != nil {
		return err
	}
	if err := p.checkResolvable(); err != nil {
		return err
	}

	_, scanOffset, _ := p.Offsets()
	if err := p.reindex(idx, -1, scanOffset, scanOffset); err != nil {
		return err
	}

	p.segment(segment).Lists.RemoveAt(local)

	// Post-removal Behavior offset; the scan side keeps the
	// pre-removal offset because the walk names records by their old
	// global indices.
	_, writeOffset, _ := p.Offsets()
	for i := idx; i < p.Len(); i++ {
		if err := p.reindex(i+1, int32(i), scanOffset, writeOffset); err != nil {
			return err
		}
	}

	p.renumber(segment)
	return nil
}

// renumber rewrites a segment's record keys to the synthetic
// "<Segment>_<n>" convention so slot names track positions after a
// structural change.
func (p *Program) renumber(segment Segment) {
	prefix := segment.String()
	p.segment(segment).Lists.Rekey(func(i int) uint32 {
		return aamp.Hash(fmt.Sprintf("%s_%d", prefix, i))
	})
}

// UpdateNames sets the record's Def.Name and Def.GroupName and
// propagates: every child referenced through ChildIdx is renamed to
// its slot's resolved name, with this record's new name as its
// GroupName, recursively. The walk keeps an on-stack visited set and
// fails with [ErrCycleDetected] on a cyclic child graph; a record
// reachable through two parents is visited once per path.
func (p *Program) UpdateNames(idx int, childName, parentName string) error {
	return p.updateNames(idx, childName, parentName, make(map[int]bool))
}

func (p *Program) updateNames(idx int, childName, parentName string, stack map[int]bool) error {
	if stack[idx] {
		return fmt.Errorf("record %d: %w", idx, ErrCycleDetected)
	}

	record, err := p.RecordAt(idx)
	if err != nil {
		return err
	}
	def, ok := record.Object("Def")
	if !ok {
		return fmt.Errorf("record %d: Def: %w", idx, ErrMissingObject)
	}
	def.Params.Put(aamp.Hash("Name"), aamp.StringRef(childName))
	def.Params.Put(aamp.Hash("GroupName"), aamp.StringRef(parentName))

	childIdx, ok := record.Object("ChildIdx")
	if !ok {
		return nil
	}
	type pending struct {
		index int
		name  string
	}
	var children []pending
	for i := 0; i < childIdx.Params.Len(); i++ {
		key, param := childIdx.Params.At(i)
		v, err := param.AsInt()
		if err != nil || v < 0 {
			continue
		}
		children = append(children, pending{index: int(v), name: p.names.Display(key)})
	}

	stack[idx] = true
	defer delete(stack, idx)
	for _, child := range children {
		if err := p.updateNames(child.index, child.name, childName, stack); err != nil {
			return err
		}
	}
	return nil
}
