// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aiprog

import (
	"fmt"

	"github.com/aiprog-tools/aiprog/lib/aamp"
)

// TreeNode is one node of the derived display tree.
type TreeNode struct {
	// Name is the record's resolved, translated display name.
	Name string

	// Index is the record's global index.
	Index int

	// Children follow the record's ChildIdx slots in stored order,
	// skipping -1 slots.
	Children []*TreeNode
}

// Roots returns the global indices of the root AI records: those no
// AI references as a child. Order follows the AI segment.
func (p *Program) Roots() ([]int, error) {
	var roots []int
	for i := 0; i < p.SegmentLen(SegmentAI); i++ {
		refs, err := p.FindReferences(i)
		if err != nil {
			return nil, err
		}
		if len(refs.AIChildren) == 0 {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

// Tree derives the display forest: one tree per root, in root order.
// A cyclic child graph fails with [ErrCycleDetected].
func (p *Program) Tree() ([]*TreeNode, error) {
	roots, err := p.Roots()
	if err != nil {
		return nil, err
	}
	forest := make([]*TreeNode, 0, len(roots))
	for _, root := range roots {
		node, err := p.buildTree(root, make(map[int]bool))
		if err != nil {
			return nil, err
		}
		forest = append(forest, node)
	}
	return forest, nil
}

// BuildTree assembles the display tree rooted at one record by
// following its ChildIdx slots recursively.
func (p *Program) BuildTree(idx int) (*TreeNode, error) {
	return p.buildTree(idx, make(map[int]bool))
}

func (p *Program) buildTree(idx int, stack map[int]bool) (*TreeNode, error) {
	if stack[idx] {
		return nil, fmt.Errorf("record %d: %w", idx, ErrCycleDetected)
	}

	record, err := p.RecordAt(idx)
	if err != nil {
		return nil, err
	}
	name, err := p.recordName(record, idx)
	if err != nil {
		return nil, err
	}
	node := &TreeNode{Name: name, Index: idx}

	childIdx, ok := record.Object("ChildIdx")
	if !ok {
		return node, nil
	}
	stack[idx] = true
	defer delete(stack, idx)
	for i := 0; i < childIdx.Params.Len(); i++ {
		_, param := childIdx.Params.At(i)
		v, err := param.AsInt()
		if err != nil || v < 0 {
			continue
		}
		child, err := p.buildTree(int(v), stack)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// DisplayName resolves the display name of the record at a global
// index: Def.Name when present, else the translated Def.ClassName.
func (p *Program) DisplayName(idx int) (string, error) {
	record, err := p.RecordAt(idx)
	if err != nil {
		return "", err
	}
	return p.recordName(record, idx)
}

// ClassName returns the record's Def.ClassName.
func (p *Program) ClassName(idx int) (string, error) {
	record, err := p.RecordAt(idx)
	if err != nil {
		return "", err
	}
	def, ok := record.Object("Def")
	if !ok {
		return "", fmt.Errorf("record %d: Def: %w", idx, ErrMissingObject)
	}
	param, ok := def.Params.Get(aamp.Hash("ClassName"))
	if !ok {
		return "", fmt.Errorf("record %d: %w", idx, ErrUnresolvableName)
	}
	class, err := param.AsString()
	if err != nil {
		return "", fmt.Errorf("record %d: ClassName: %w", idx, err)
	}
	return class, nil
}

// recordName resolves a record's display name: Name when the Def
// carries one, else ClassName, translated either way (translation is
// the identity for strings the localization map doesn't know).
func (p *Program) recordName(record *aamp.List, idx int) (string, error) {
	def, ok := record.Object("Def")
	if !ok {
		return "", fmt.Errorf("record %d: Def: %w", idx, ErrMissingObject)
	}
	if param, ok := def.Params.Get(aamp.Hash("Name")); ok {
		if name, err := param.AsString(); err == nil {
			return p.locale.Translate(name), nil
		}
	}
	if param, ok := def.Params.Get(aamp.Hash("ClassName")); ok {
		if class, err := param.AsString(); err == nil {
			return p.locale.Translate(class), nil
		}
	}
	return "", fmt.Errorf("record %d: %w", idx, ErrUnresolvableName)
}
