// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package progui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aiprog-tools/aiprog/lib/aamp"
	"github.com/aiprog-tools/aiprog/lib/aiprog"
	"github.com/aiprog-tools/aiprog/lib/names"
)

// Tab identifies which data view is active.
type Tab int

const (
	// TabTree shows the derived program tree.
	TabTree Tab = iota
	// TabAI through TabQuery show flat per-segment record listings.
	TabAI
	TabAction
	TabBehavior
	TabQuery
)

// segment returns the segment a flat tab lists. The tree tab has no
// single segment; additions there go to the AI segment, where new
// subtree roots live.
func (t Tab) segment() aiprog.Segment {
	switch t {
	case TabAction:
		return aiprog.SegmentAction
	case TabBehavior:
		return aiprog.SegmentBehavior
	case TabQuery:
		return aiprog.SegmentQuery
	default:
		return aiprog.SegmentAI
	}
}

// FocusRegion identifies where keyboard input routes.
type FocusRegion int

const (
	// FocusList means navigation keys move the record list cursor.
	FocusList FocusRegion = iota
	// FocusDetail means navigation keys scroll the detail viewport.
	FocusDetail
	// FocusPicker means the class-picker overlay is active.
	FocusPicker
	// FocusRename means keystrokes go to the rename input.
	FocusRename
)

// row is one visible line of the left pane: a record, possibly
// indented below its parent on the tree tab.
type row struct {
	index      int // Global record index.
	depth      int
	label      string
	expandable bool
}

// mutationResultMsg is sent when an asynchronous engine mutation
// completes. On error the message is displayed in the status bar and
// the container is unchanged.
type mutationResultMsg struct {
	verb string
	err  error
}

// saveResultMsg is sent when an asynchronous save completes.
type saveResultMsg struct {
	err error
}

// Model is the top-level bubbletea model for the archive viewer.
type Model struct {
	program *aiprog.Program
	names   *names.Table
	path    string
	theme   Theme
	keys    KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Left pane state.
	activeTab    Tab
	rows         []row
	cursor       int
	scrollOffset int
	collapsed    map[int]bool // Tree nodes collapsed, by record index.
	treeError    string       // Non-empty when tree derivation failed.

	// Right pane.
	focus  FocusRegion
	detail viewport.Model

	// Class-picker overlay (FocusPicker).
	pickerClasses []string
	pickerCursor  int

	// Rename prompt (FocusRename).
	rename       textinput.Model
	renameTarget int

	// Mutation gate: true while an engine mutation or save runs in a
	// tea.Cmd. The engine assumes a single mutator; no second
	// mutation starts until the result message lands.
	busy bool

	dirty       bool
	status      string
	statusError bool
}

// NewModel creates a Model over a loaded program. path is where Save
// writes; table renders keys in the detail pane and rename prompts.
func NewModel(program *aiprog.Program, table *names.Table, path string, theme Theme) Model {
	rename := textinput.New()
	rename.CharLimit = 64
	rename.Prompt = "name: "

	model := Model{
		program:   program,
		names:     table,
		path:      path,
		theme:     theme,
		keys:      DefaultKeyMap,
		collapsed: make(map[int]bool),
		rename:    rename,
	}
	model.rebuildRows()
	return model
}

// SetTab selects the startup tab before the program runs.
func (model *Model) SetTab(tab Tab) {
	model.activeTab = tab
	model.cursor = 0
	model.scrollOffset = 0
	model.rebuildRows()
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.detail.Width = model.detailWidth()
		model.detail.Height = model.paneHeight()
		model.refreshDetail()
		return model, nil

	case mutationResultMsg:
		model.busy = false
		if message.err != nil {
			model.status = message.err.Error()
			model.statusError = true
			return model, nil
		}
		model.status = message.verb
		model.statusError = false
		model.dirty = true
		// Record indices may have shifted; collapse state keyed by
		// index is stale.
		clear(model.collapsed)
		model.rebuildRows()
		model.refreshDetail()
		return model, nil

	case saveResultMsg:
		model.busy = false
		if message.err != nil {
			model.status = message.err.Error()
			model.statusError = true
			return model, nil
		}
		model.status = "saved " + model.path
		model.statusError = false
		model.dirty = false
		return model, nil

	case tea.KeyMsg:
		switch model.focus {
		case FocusPicker:
			return model.updatePicker(message)
		case FocusRename:
			return model.updateRename(message)
		default:
			return model.updateList(message)
		}
	}
	return model, nil
}

func (model Model) updateList(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusDetail
		} else {
			model.focus = FocusList
		}

	case key.Matches(message, model.keys.TabTree):
		model.switchTab(TabTree)
	case key.Matches(message, model.keys.TabAI):
		model.switchTab(TabAI)
	case key.Matches(message, model.keys.TabAction):
		model.switchTab(TabAction)
	case key.Matches(message, model.keys.TabBehavior):
		model.switchTab(TabBehavior)
	case key.Matches(message, model.keys.TabQuery):
		model.switchTab(TabQuery)

	case key.Matches(message, model.keys.Up):
		if model.focus == FocusDetail {
			model.detail.LineUp(1)
		} else {
			model.moveCursor(-1)
		}
	case key.Matches(message, model.keys.Down):
		if model.focus == FocusDetail {
			model.detail.LineDown(1)
		} else {
			model.moveCursor(1)
		}
	case key.Matches(message, model.keys.PageUp):
		if model.focus == FocusDetail {
			model.detail.HalfViewUp()
		} else {
			model.moveCursor(-model.paneHeight() / 2)
		}
	case key.Matches(message, model.keys.PageDown):
		if model.focus == FocusDetail {
			model.detail.HalfViewDown()
		} else {
			model.moveCursor(model.paneHeight() / 2)
		}
	case key.Matches(message, model.keys.Home):
		model.moveCursor(-len(model.rows))
	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.rows))

	case key.Matches(message, model.keys.Left):
		if model.activeTab == TabTree {
			if r, ok := model.selectedRow(); ok && r.expandable {
				model.collapsed[r.index] = true
				model.rebuildRows()
			}
		}
	case key.Matches(message, model.keys.Right):
		if model.activeTab == TabTree {
			if r, ok := model.selectedRow(); ok && r.expandable {
				delete(model.collapsed, r.index)
				model.rebuildRows()
			}
		}

	case key.Matches(message, model.keys.Add):
		if model.busy {
			return model, nil
		}
		classes := model.program.Defs().Classes(model.activeTab.segment().String())
		if len(classes) == 0 {
			model.status = fmt.Sprintf("no %s classes in catalog", model.activeTab.segment())
			model.statusError = true
			return model, nil
		}
		model.pickerClasses = model.pickerClasses[:0]
		for _, class := range classes {
			model.pickerClasses = append(model.pickerClasses, class.Name)
		}
		model.pickerCursor = 0
		model.focus = FocusPicker

	case key.Matches(message, model.keys.Delete):
		if model.busy {
			return model, nil
		}
		r, ok := model.selectedRow()
		if !ok {
			return model, nil
		}
		model.busy = true
		return model, model.deleteCmd(r.index)

	case key.Matches(message, model.keys.Rename):
		if model.busy {
			return model, nil
		}
		r, ok := model.selectedRow()
		if !ok {
			return model, nil
		}
		model.renameTarget = r.index
		model.rename.SetValue("")
		model.rename.Focus()
		model.focus = FocusRename

	case key.Matches(message, model.keys.Save):
		if model.busy {
			return model, nil
		}
		model.busy = true
		return model, model.saveCmd()
	}

	return model, nil
}

func (model Model) updatePicker(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.focus = FocusList
	case key.Matches(message, model.keys.Up):
		if model.pickerCursor > 0 {
			model.pickerCursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.pickerCursor < len(model.pickerClasses)-1 {
			model.pickerCursor++
		}
	default:
		if message.String() == "enter" {
			class := model.pickerClasses[model.pickerCursor]
			model.focus = FocusList
			model.busy = true
			return model, model.insertCmd(model.activeTab.segment(), class)
		}
	}
	return model, nil
}

func (model Model) updateRename(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.rename.Blur()
		model.focus = FocusList
		return model, nil
	}
	if message.String() == "enter" {
		name := model.rename.Value()
		model.rename.Blur()
		model.focus = FocusList
		if name == "" {
			return model, nil
		}
		model.busy = true
		return model, model.renameCmd(model.renameTarget, name)
	}
	var cmd tea.Cmd
	model.rename, cmd = model.rename.Update(message)
	return model, cmd
}

// insertCmd seeds a new record of class at the tail of segment.
func (model Model) insertCmd(segment aiprog.Segment, class string) tea.Cmd {
	program := model.program
	return func() tea.Msg {
		_, err := program.Insert(segment, class)
		return mutationResultMsg{verb: "added " + class, err: err}
	}
}

// deleteCmd removes the record at idx, clearing references to it.
func (model Model) deleteCmd(idx int) tea.Cmd {
	program := model.program
	return func() tea.Msg {
		err := program.Delete(idx)
		return mutationResultMsg{verb: fmt.Sprintf("deleted record %d", idx), err: err}
	}
}

// renameCmd renames the record at idx, keeping its current group and
// cascading names down its child subtree.
func (model Model) renameCmd(idx int, name string) tea.Cmd {
	program := model.program
	group := model.groupName(idx)
	return func() tea.Msg {
		err := program.UpdateNames(idx, name, group)
		return mutationResultMsg{verb: "renamed to " + name, err: err}
	}
}

// saveCmd writes the container back to its file.
func (model Model) saveCmd() tea.Cmd {
	program, path, table := model.program, model.path, model.names
	return func() tea.Msg {
		return saveResultMsg{err: aamp.WriteFile(path, program.PIO(), table)}
	}
}

// groupName reads the record's current Def.GroupName, empty on any
// miss.
func (model Model) groupName(idx int) string {
	record, err := model.program.RecordAt(idx)
	if err != nil {
		return ""
	}
	def, ok := record.Object("Def")
	if !ok {
		return ""
	}
	p, ok := def.Params.Get(aamp.Hash("GroupName"))
	if !ok {
		return ""
	}
	s, err := p.AsString()
	if err != nil {
		return ""
	}
	return s
}

func (model *Model) switchTab(tab Tab) {
	if model.activeTab == tab {
		return
	}
	model.activeTab = tab
	model.cursor = 0
	model.scrollOffset = 0
	model.focus = FocusList
	model.rebuildRows()
	model.refreshDetail()
}

func (model *Model) moveCursor(delta int) {
	model.cursor += delta
	if model.cursor < 0 {
		model.cursor = 0
	}
	if model.cursor >= len(model.rows) {
		model.cursor = len(model.rows) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.clampScroll()
	model.refreshDetail()
}

func (model *Model) clampScroll() {
	height := model.paneHeight()
	if height <= 0 {
		return
	}
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
}

func (model Model) selectedRow() (row, bool) {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return row{}, false
	}
	return model.rows[model.cursor], true
}

// rebuildRows regenerates the left pane from the program. Called
// after every structural change and tab switch.
func (model *Model) rebuildRows() {
	model.rows = model.rows[:0]
	model.treeError = ""

	if model.activeTab == TabTree {
		forest, err := model.program.Tree()
		if err != nil {
			model.treeError = err.Error()
			return
		}
		for _, root := range forest {
			model.appendTreeRows(root, 0)
		}
	} else {
		segment := model.activeTab.segment()
		base := model.segmentBase(segment)
		for i := 0; i < model.program.SegmentLen(segment); i++ {
			model.rows = append(model.rows, row{
				index: base + i,
				label: model.recordLabel(base + i),
			})
		}
	}

	if model.cursor >= len(model.rows) {
		model.cursor = len(model.rows) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.clampScroll()
}

func (model *Model) appendTreeRows(node *aiprog.TreeNode, depth int) {
	model.rows = append(model.rows, row{
		index:      node.Index,
		depth:      depth,
		label:      node.Name,
		expandable: len(node.Children) > 0,
	})
	if model.collapsed[node.Index] {
		return
	}
	for _, child := range node.Children {
		model.appendTreeRows(child, depth+1)
	}
}

func (model Model) segmentBase(segment aiprog.Segment) int {
	actions, behaviors, queries := model.program.Offsets()
	switch segment {
	case aiprog.SegmentAction:
		return actions
	case aiprog.SegmentBehavior:
		return behaviors
	case aiprog.SegmentQuery:
		return queries
	default:
		return 0
	}
}

// recordLabel renders "name (Class)" for flat listings, degrading to
// whatever is recoverable from a malformed record.
func (model Model) recordLabel(idx int) string {
	class, classErr := model.program.ClassName(idx)
	name, nameErr := model.program.DisplayName(idx)
	switch {
	case nameErr == nil && classErr == nil && name != class:
		return fmt.Sprintf("%s (%s)", name, class)
	case nameErr == nil:
		return name
	case classErr == nil:
		return class
	default:
		return fmt.Sprintf("record %d", idx)
	}
}
