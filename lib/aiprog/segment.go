// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aiprog

import "fmt"

// Segment identifies one of the four ordered record collections. The
// order of the constants is the order of the conceptual concatenation
// that defines the global index space.
type Segment int

const (
	SegmentAI Segment = iota
	SegmentAction
	SegmentBehavior
	SegmentQuery
)

// Segments lists all four segments in concatenation order.
var Segments = [4]Segment{SegmentAI, SegmentAction, SegmentBehavior, SegmentQuery}

// String returns the segment's archive name ("AI", "Action",
// "Behavior", "Query"), which is also its list key and slot-name
// prefix.
func (s Segment) String() string {
	switch s {
	case SegmentAI:
		return "AI"
	case SegmentAction:
		return "Action"
	case SegmentBehavior:
		return "Behavior"
	case SegmentQuery:
		return "Query"
	default:
		return fmt.Sprintf("Segment(%d)", int(s))
	}
}

// ParseSegment parses a segment name as written in archives.
func ParseSegment(name string) (Segment, error) {
	for _, s := range Segments {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown segment %q", name)
}
