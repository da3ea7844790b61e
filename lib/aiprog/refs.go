// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aiprog

import (
	"fmt"

	"github.com/aiprog-tools/aiprog/lib/aamp"
)

// RefKey names one reference location: the global index of the record
// holding it and the hash of the slot parameter.
type RefKey struct {
	Record int
	Param  uint32
}

// References is the set of locations currently pointing at one
// target, split by reference kind. Maps are presence sets.
type References struct {
	// Demos holds the DemoAIActionIdx slot keys whose value is the
	// target's global index.
	Demos map[uint32]struct{}

	// AIChildren holds ChildIdx slots on AI records whose value is
	// the target's global index.
	AIChildren map[RefKey]struct{}

	// AIBehaviors and ActionBehaviors hold BehaviorIdx slots whose
	// value is the target's Behavior-segment-local index.
	AIBehaviors     map[RefKey]struct{}
	ActionBehaviors map[RefKey]struct{}
}

// Total returns the number of reference locations across all kinds.
func (r *References) Total() int {
	return len(r.Demos) + len(r.AIChildren) + len(r.AIBehaviors) + len(r.ActionBehaviors)
}

// FindReferences scans the whole container for references to the
// record at global index target. This is a full scan over every
// record's slots; containers are small (tens to low hundreds of
// records) and mutations are rare, so no incremental index is kept.
//
// An AI record without a ChildIdx object fails the scan with
// [ErrMissingObject] unless its class declares no children.
func (p *Program) FindReferences(target int) (*References, error) {
	_, behaviorsOffset, _ := p.Offsets()
	return p.findReferencesAt(target, behaviorsOffset)
}

// findReferencesAt is FindReferences with an explicit Behavior
// offset for interpreting BehaviorIdx locals. The mutation walks pass
// the offset of the epoch their candidate indices belong to; see
// reindex.
func (p *Program) findReferencesAt(target int, behaviorsOffset int) (*References, error) {
	refs := &References{
		Demos:           make(map[uint32]struct{}),
		AIChildren:      make(map[RefKey]struct{}),
		AIBehaviors:     make(map[RefKey]struct{}),
		ActionBehaviors: make(map[RefKey]struct{}),
	}
	actionsOffset, _, _ := p.Offsets()

	demo := p.demoIdx()
	for i := 0; i < demo.Params.Len(); i++ {
		key, param := demo.Params.At(i)
		if v, err := param.AsInt(); err == nil && int(v) == target {
			refs.Demos[key] = struct{}{}
		}
	}

	// BehaviorIdx slots store Behavior-local indices. A target below
	// the Behavior segment has no local representation, so its local
	// comparison value would falsely match cleared (-1) or unrelated
	// slots; skip the Behavior scans entirely for such targets.
	behaviorLocal := target - behaviorsOffset
	scanBehaviors := target >= behaviorsOffset

	ais := &p.segment(SegmentAI).Lists
	for i := 0; i < ais.Len(); i++ {
		_, ai := ais.At(i)
		childIdx, ok := ai.Object("ChildIdx")
		if !ok {
			if p.aiRequiresChildIdx(ai) {
				return nil, fmt.Errorf("AI record %d: ChildIdx: %w", i, ErrMissingObject)
			}
		} else {
			for j := 0; j < childIdx.Params.Len(); j++ {
				key, param := childIdx.Params.At(j)
				if v, err := param.AsInt(); err == nil && int(v) == target {
					refs.AIChildren[RefKey{Record: i, Param: key}] = struct{}{}
				}
			}
		}
		if scanBehaviors {
			collectBehaviorRefs(ai, i, behaviorLocal, refs.AIBehaviors)
		}
	}

	if scanBehaviors {
		actions := &p.segment(SegmentAction).Lists
		for i := 0; i < actions.Len(); i++ {
			_, action := actions.At(i)
			collectBehaviorRefs(action, actionsOffset+i, behaviorLocal, refs.ActionBehaviors)
		}
	}

	return refs, nil
}

// collectBehaviorRefs adds the record's BehaviorIdx slots whose value
// equals local to the set. BehaviorIdx is optional on every record.
func collectBehaviorRefs(record *aamp.List, global int, local int, into map[RefKey]struct{}) {
	behaviorIdx, ok := record.Object("BehaviorIdx")
	if !ok {
		return
	}
	for i := 0; i < behaviorIdx.Params.Len(); i++ {
		key, param := behaviorIdx.Params.At(i)
		if v, err := param.AsInt(); err == nil && int(v) == local {
			into[RefKey{Record: global, Param: key}] = struct{}{}
		}
	}
}

// aiRequiresChildIdx reports whether an AI record without a ChildIdx
// object is malformed: true when its class declares children (or
// the class cannot be determined).
func (p *Program) aiRequiresChildIdx(ai *aamp.List) bool {
	def, ok := ai.Object("Def")
	if !ok {
		return true
	}
	param, ok := def.Params.Get(aamp.Hash("ClassName"))
	if !ok {
		return true
	}
	class, err := param.AsString()
	if err != nil {
		return true
	}
	return p.defs.HasChildren(SegmentAI.String(), class)
}

// checkResolvable verifies that a full reference scan cannot fail:
// every AI record either carries ChildIdx or belongs to a childless
// class. Mutations run this preflight so they fail before touching
// anything rather than midway through an index shift.
func (p *Program) checkResolvable() error {
	ais := &p.segment(SegmentAI).Lists
	for i := 0; i < ais.Len(); i++ {
		_, ai := ais.At(i)
		if _, ok := ai.Object("ChildIdx"); !ok && p.aiRequiresChildIdx(ai) {
			return fmt.Errorf("AI record %d: ChildIdx: %w", i, ErrMissingObject)
		}
	}
	return nil
}
