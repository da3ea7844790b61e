// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aiprog

import "errors"

// Sentinel errors for the failure kinds callers dispatch on. All are
// returned wrapped with context; test with errors.Is.
var (
	// ErrInvalidContainer means the loaded archive is missing one of
	// the four segments or the DemoAIActionIdx object. Fatal at load;
	// a Program is never constructed over such an archive.
	ErrInvalidContainer = errors.New("invalid AI program container")

	// ErrOutOfRange means a global index is not below the current
	// total record count.
	ErrOutOfRange = errors.New("record index out of range")

	// ErrMissingObject means a record lacks a parameter object it is
	// required to carry (Def, or ChildIdx on an AI whose class
	// declares children). The operation aborts before mutating.
	ErrMissingObject = errors.New("required parameter object missing")

	// ErrUnresolvableName means a record's Def carries neither a Name
	// nor a ClassName to display.
	ErrUnresolvableName = errors.New("record has neither Name nor ClassName")

	// ErrCycleDetected means a ChildIdx walk revisited a record
	// already on the traversal stack.
	ErrCycleDetected = errors.New("cycle in child references")
)
