// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aamp

// Object is an ordered set of scalar parameters keyed by name hash.
// Def, ChildIdx, BehaviorIdx, SInst, and DemoAIActionIdx are all
// Objects.
type Object struct {
	Params OrderedMap[Parameter]
}

// List is an ordered collection of named child objects and named
// child lists. A record (one AI, Action, Behavior, or Query entry) is
// a List; so is each of the four segment containers that hold the
// records.
type List struct {
	Objects OrderedMap[*Object]
	Lists   OrderedMap[*List]
}

// Object returns the child object with the given name, hashing it
// first.
func (l *List) Object(name string) (*Object, bool) {
	return l.Objects.Get(Hash(name))
}

// List returns the child list with the given name, hashing it first.
func (l *List) List(name string) (*List, bool) {
	return l.Lists.Get(Hash(name))
}

// ParameterIO is the root of a parameter archive: a format version, a
// free-form type tag (game-specific, "xml" for AI programs), and the
// root parameter list.
type ParameterIO struct {
	Version uint32
	Type    string
	Root    List
}

// NewParameterIO returns an empty archive with the conventional
// AI-program version and type tag.
func NewParameterIO() *ParameterIO {
	return &ParameterIO{Version: 410, Type: "xml"}
}
