// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package names

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/aiprog-tools/aiprog/lib/aamp"
)

//go:embed data/names.jsonc
var bundledNames []byte

// numberedLimit is the highest slot number precomputed for the
// synthetic "<Segment>_<n>" names. Real archives hold tens to low
// hundreds of records per segment; 1000 leaves generous headroom.
const numberedLimit = 1000

// segmentPrefixes are the four synthetic slot-name prefixes.
var segmentPrefixes = [4]string{"AI_", "Action_", "Behavior_", "Query_"}

// Table is a reverse name table: hash → name. Construct with [New],
// then extend with Add, AddFile, or Harvest. Reads and writes are not
// synchronized; build the table up front and treat it as read-only
// afterwards.
type Table struct {
	names map[uint32]string
}

// New returns a table seeded with the bundled reference list and the
// precomputed numbered slot names.
func New() (*Table, error) {
	t := &Table{names: make(map[uint32]string, 8192)}

	var bundled []string
	if err := json.Unmarshal(jsonc.ToJSON(bundledNames), &bundled); err != nil {
		return nil, fmt.Errorf("parsing bundled name list: %w", err)
	}
	for _, name := range bundled {
		t.Add(name)
	}

	for _, prefix := range segmentPrefixes {
		for n := 0; n <= numberedLimit; n++ {
			t.Add(prefix + strconv.Itoa(n))
		}
	}
	return t, nil
}

// Add registers name under its hash. First registration wins: the
// bundled list and numbered names take priority over harvested
// strings, which may collide.
func (t *Table) Add(name string) {
	hash := aamp.Hash(name)
	if _, exists := t.names[hash]; !exists {
		t.names[hash] = name
	}
}

// AddFile registers every name from a JSONC file holding an array of
// strings. Used for user-supplied extra tables from configuration.
func (t *Table) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading name table %s: %w", path, err)
	}
	var extra []string
	if err := json.Unmarshal(jsonc.ToJSON(data), &extra); err != nil {
		return fmt.Errorf("parsing name table %s: %w", path, err)
	}
	for _, name := range extra {
		t.Add(name)
	}
	return nil
}

// Name returns the name registered for hash, if any. Implements
// [aamp.NameResolver].
func (t *Table) Name(hash uint32) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// Display returns the best-effort rendering of hash: the registered
// name, or the raw hash as a 0x literal.
func (t *Table) Display(hash uint32) string {
	if name, ok := t.names[hash]; ok {
		return name
	}
	return fmt.Sprintf("0x%08x", hash)
}

// Harvest walks a loaded archive and registers every string-valued
// parameter it holds. Names, group names, and class names stored in
// one archive are frequently the keys of another, so harvesting at
// load time recovers names the bundled list doesn't carry.
func (t *Table) Harvest(pio *aamp.ParameterIO) {
	t.harvestList(&pio.Root)
}

func (t *Table) harvestList(list *aamp.List) {
	for i := 0; i < list.Objects.Len(); i++ {
		_, obj := list.Objects.At(i)
		for j := 0; j < obj.Params.Len(); j++ {
			_, p := obj.Params.At(j)
			if p.IsString() {
				if s, err := p.AsString(); err == nil && s != "" {
					t.Add(s)
				}
			}
		}
	}
	for i := 0; i < list.Lists.Len(); i++ {
		_, child := list.Lists.At(i)
		t.harvestList(child)
	}
}
