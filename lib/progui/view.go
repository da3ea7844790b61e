// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package progui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pane split: fraction of the width given to the record list.
const listRatio = 0.45

func (model Model) listWidth() int {
	w := int(float64(model.width) * listRatio)
	if w < 20 {
		w = 20
	}
	return w
}

func (model Model) detailWidth() int {
	w := model.width - model.listWidth() - 1
	if w < 20 {
		w = 20
	}
	return w
}

// paneHeight is the terminal height minus tab bar and status bar.
func (model Model) paneHeight() int {
	h := model.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

var tabTitles = [...]string{"Tree", "AI", "Action", "Behavior", "Query"}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "loading..."
	}
	return strings.Join([]string{
		model.viewTabBar(),
		lipgloss.JoinHorizontal(lipgloss.Top,
			model.viewList(),
			lipgloss.NewStyle().Foreground(model.theme.BorderColor).
				Render(strings.TrimSuffix(strings.Repeat("│\n", model.paneHeight()), "\n")),
			model.viewDetail(),
		),
		model.viewStatusBar(),
	}, "\n")
}

func (model Model) viewTabBar() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	inactive := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	parts := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d:%s", i+1, title)
		if Tab(i) == model.activeTab {
			parts[i] = active.Render("[" + label + "]")
		} else {
			parts[i] = inactive.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (model Model) viewList() string {
	width := model.listWidth()
	height := model.paneHeight()

	if model.treeError != "" {
		style := lipgloss.NewStyle().Width(width).Foreground(model.theme.ErrorText)
		return style.Render("tree unavailable: " + model.treeError)
	}
	if len(model.rows) == 0 {
		return lipgloss.NewStyle().Width(width).Height(height).
			Foreground(model.theme.FaintText).Render("(no records)")
	}

	normal := lipgloss.NewStyle().Width(width).Foreground(model.theme.NormalText)
	selected := lipgloss.NewStyle().Width(width).
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	var lines []string
	for i := model.scrollOffset; i < len(model.rows) && len(lines) < height; i++ {
		r := model.rows[i]
		marker := "  "
		if r.expandable {
			if model.collapsed[r.index] {
				marker = "▸ "
			} else {
				marker = "▾ "
			}
		}
		line := strings.Repeat("  ", r.depth) + marker + model.colorBySegment(r.index, r.label)
		if i == model.cursor && model.focus != FocusDetail {
			line = selected.Render(ansiTruncate(line, width))
		} else {
			line = normal.Render(ansiTruncate(line, width))
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, normal.Render(""))
	}
	return strings.Join(lines, "\n")
}

// colorBySegment tints a record label with its segment's accent.
func (model Model) colorBySegment(idx int, label string) string {
	segment, _, err := model.program.Locate(idx)
	if err != nil {
		return label
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.SegmentColors[int(segment)]).
		Render(label)
}

func (model Model) viewDetail() string {
	switch model.focus {
	case FocusPicker:
		return model.viewPicker()
	case FocusRename:
		return model.viewRename()
	}
	return model.detail.View()
}

func (model Model) viewPicker() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
		Render(fmt.Sprintf("add %s record", model.activeTab.segment()))
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	selected := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	lines := []string{header, ""}
	for i, class := range model.pickerClasses {
		if i == model.pickerCursor {
			lines = append(lines, selected.Render("> "+class))
		} else {
			lines = append(lines, normal.Render("  "+class))
		}
	}
	return strings.Join(lines, "\n")
}

func (model Model) viewRename() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
		Render(fmt.Sprintf("rename record %d", model.renameTarget))
	return header + "\n\n" + model.rename.View()
}

func (model Model) viewStatusBar() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	file := model.path
	if model.dirty {
		file += lipgloss.NewStyle().Foreground(model.theme.DirtyText).Render(" [modified]")
	}
	if model.busy {
		file += faint.Render(" (working...)")
	}

	status := model.status
	if model.statusError {
		status = lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render(status)
	} else {
		status = faint.Render(status)
	}

	help := faint.Render("a:add d:delete r:rename s:save Tab:pane q:quit")
	return file + "  " + status + "\n" + help
}

// refreshDetail regenerates the right pane content for the selected
// record.
func (model *Model) refreshDetail() {
	if !model.ready {
		return
	}
	r, ok := model.selectedRow()
	if !ok {
		model.detail.SetContent("")
		return
	}
	model.detail.SetContent(model.detailContent(r.index))
}

// detailContent renders a record's objects and parameters through
// the reverse name table.
func (model Model) detailContent(idx int) string {
	record, err := model.program.RecordAt(idx)
	if err != nil {
		return err.Error()
	}
	segment, local, err := model.program.Locate(idx)
	if err != nil {
		return err.Error()
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	objStyle := lipgloss.NewStyle().Foreground(model.theme.SegmentColors[int(segment)])
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header.Render(fmt.Sprintf("%s (global %d, %s_%d)", model.recordLabel(idx), idx, segment, local)))
	for i := 0; i < record.Objects.Len(); i++ {
		key, obj := record.Objects.At(i)
		fmt.Fprintf(&b, "\n%s\n", objStyle.Render(model.names.Display(key)))
		for j := 0; j < obj.Params.Len(); j++ {
			pkey, param := obj.Params.At(j)
			fmt.Fprintf(&b, "  %s: %s %s\n",
				model.names.Display(pkey), param.String(), faint.Render("("+param.Type().String()+")"))
		}
	}
	return b.String()
}

// ansiTruncate trims a styled line to width visible cells, counting
// escape sequences as zero width.
func ansiTruncate(s string, width int) string {
	visible := 0
	inEscape := false
	for i, r := range s {
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if visible >= width {
			return s[:i] + "\x1b[0m"
		}
		visible++
	}
	return s
}
