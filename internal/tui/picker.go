package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/wristtrack/internal/catalog"
	"github.com/sadopc/wristtrack/internal/store"
)

type pickResult int

const (
	pickNone pickResult = iota
	pickSelect
	pickClear
	pickClose
)

// pickerModel is the item sheet for one date.
type pickerModel struct {
	cat       *catalog.Catalog
	date      store.DateKey
	current   string
	hasRecord bool
	cursor    int
}

// newPickerModel opens the sheet on d. current is the raw stored id, which
// may be outside the catalog.
func newPickerModel(cat *catalog.Catalog, d store.DateKey, current string, hasRecord bool) pickerModel {
	p := pickerModel{cat: cat, date: d, current: current, hasRecord: hasRecord}
	if i := cat.IndexOf(current); i >= 0 {
		p.cursor = i
	}
	return p
}

// update returns the chosen item id together with pickSelect.
func (p pickerModel) update(msg tea.KeyMsg) (pickerModel, pickResult, string) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < p.cat.Len()-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Enter):
		return p, pickSelect, p.cat.At(p.cursor).ID
	case key.Matches(msg, keys.Clear):
		if p.hasRecord {
			return p, pickClear, ""
		}
	case key.Matches(msg, keys.Back):
		return p, pickClose, ""
	default:
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			i := int(s[0] - '1')
			if i < p.cat.Len() {
				p.cursor = i
				return p, pickSelect, p.cat.At(i).ID
			}
		}
	}
	return p, pickNone, ""
}

func (p pickerModel) view(w int) string {
	title := titleStyle.Render("Wear on " + p.date.String())

	var rows []string
	rows = append(rows, title, "")
	for i, it := range p.cat.Items() {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := " "
		if it.ID == p.current {
			mark = "✓"
		}
		num := " "
		if i < 9 {
			num = fmt.Sprintf("%d", i+1)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s %s", cursor, num, mark, it.Name)))
	}
	rows = append(rows, "")

	clearHint := mutedStyle.Render("x: clear")
	if !p.hasRecord {
		clearHint = disabledItemStyle.Render("x: clear")
	}
	rows = append(rows, mutedStyle.Render("  enter/1-9: select  ")+clearHint+mutedStyle.Render("  esc: close"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
