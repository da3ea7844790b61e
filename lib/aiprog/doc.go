// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// Package aiprog is the consistency engine for AI program archives.
//
// An AI program holds four ordered segments of records — AI, Action,
// Behavior, Query — and records reference each other by position in
// the conceptual concatenation of all four segments (the global
// index). Three kinds of embedded references exist:
//
//   - ChildIdx slots on AI records, holding global indices of child
//     AI or Action records;
//   - BehaviorIdx slots on AI and Action records, holding
//     Behavior-segment-local indices;
//   - the top-level DemoAIActionIdx object, holding global indices of
//     Action records.
//
// A value of -1 in any slot means "no reference".
//
// Because references are positional, inserting or removing a record
// silently invalidates every reference at or after the mutation
// point. [Program] owns keeping the container consistent: its Insert
// and Delete walk the affected index range and rewrite every embedded
// reference (descending on insert, ascending on delete, so a
// reference is never shifted twice), force references to deleted
// records to -1, and renumber the segment's synthetic slot names.
//
// The engine also derives the presentation tree: Roots returns the AI
// records nothing references as a child, and Tree assembles the
// display tree by following ChildIdx slots. Both traversals carry an
// on-stack visited set and fail with [ErrCycleDetected] on a cyclic
// child graph instead of recursing without bound; diamonds (one
// record referenced by two parents) are legal and appear once per
// path.
//
// All operations are synchronous and assume a single mutator per
// container. Mutations validate their preconditions before touching
// anything, so a failed call leaves the container unchanged.
package aiprog
