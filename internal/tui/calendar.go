package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wristtrack/internal/catalog"
	"github.com/sadopc/wristtrack/internal/log"
	"github.com/sadopc/wristtrack/internal/store"
)

const (
	labelsCheck = "check"
	labelsShort = "short"
)

type calendarModel struct {
	store  *store.Store
	cat    *catalog.Catalog
	log    *log.Logger
	now    func() time.Time
	width  int
	height int

	records store.Records
	cursor  time.Time
	tap     tapState

	sheetOpen bool
	picker    pickerModel

	weekStart  time.Weekday
	gridLabels string
}

func newCalendarModel(s *store.Store, cat *catalog.Catalog, logger *log.Logger, now func() time.Time) calendarModel {
	c := calendarModel{
		store:   s,
		cat:     cat,
		log:     logger.WithComponent("calendar"),
		now:     now,
		records: store.Records{},
		cursor:  dayOf(now()),
	}
	c.loadSettings()
	return c
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c calendarModel) load() tea.Cmd {
	return func() tea.Msg {
		return recordsLoadedMsg{records: c.store.LoadRecords()}
	}
}

func (c *calendarModel) loadSettings() {
	c.weekStart = time.Sunday
	if c.store.SettingOr(store.SettingWeekStart, "sunday") == "monday" {
		c.weekStart = time.Monday
	}
	c.gridLabels = labelsCheck
	if c.store.SettingOr(store.SettingGridLabels, labelsCheck) == labelsShort {
		c.gridLabels = labelsShort
	}
}

func (c calendarModel) cursorKey() store.DateKey { return store.DateKeyOf(c.cursor) }

// filled reports whether d holds a record for a catalog item. Records that
// point outside the catalog read as empty.
func (c calendarModel) filled(d store.DateKey) bool {
	id, ok := c.records.Get(d)
	return ok && c.cat.Contains(id)
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		c.records = msg.records
		return c, nil

	case settingsSavedMsg:
		c.loadSettings()
		return c, nil

	case tea.KeyMsg:
		if c.sheetOpen {
			return c.updateSheet(msg)
		}

		switch {
		case key.Matches(msg, keys.Up):
			c.moveTo(c.cursor.AddDate(0, 0, -7))
		case key.Matches(msg, keys.Down):
			c.moveTo(c.cursor.AddDate(0, 0, 7))
		case key.Matches(msg, keys.Left):
			c.moveTo(c.cursor.AddDate(0, 0, -1))
		case key.Matches(msg, keys.Right):
			c.moveTo(c.cursor.AddDate(0, 0, 1))
		case key.Matches(msg, keys.PrevMonth):
			c.shiftMonth(-1)
		case key.Matches(msg, keys.NextMonth):
			c.shiftMonth(1)
		case key.Matches(msg, keys.Today):
			c.moveTo(dayOf(c.now()))
			c.tapDate(c.cursorKey())
		case key.Matches(msg, keys.RecordToday):
			c.moveTo(dayOf(c.now()))
			c.openPicker(c.cursorKey())
		case key.Matches(msg, keys.Enter):
			c.tapDate(c.cursorKey())
		}
	}
	return c, nil
}

// moveTo places the cursor on t. Landing on another date drops any preview.
func (c *calendarModel) moveTo(t time.Time) {
	t = dayOf(t)
	if !t.Equal(c.cursor) {
		c.tap = c.tap.reset()
	}
	c.cursor = t
}

// shiftMonth moves by n months, keeping the day of month where it exists.
func (c *calendarModel) shiftMonth(n int) {
	y, m, d := c.cursor.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, c.cursor.Location())
	d = min(d, daysIn(first.Year(), first.Month()))
	c.moveTo(time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, first.Location()))
	c.tap = c.tap.reset()
}

func (c *calendarModel) resetTap() {
	c.tap = c.tap.reset()
}

func (c *calendarModel) tapDate(d store.DateKey) {
	var act tapAction
	c.tap, act = c.tap.tap(d, c.filled(d))
	if act == tapOpenPicker {
		c.openPicker(d)
	}
}

func (c *calendarModel) openPicker(d store.DateKey) {
	id, ok := c.records.Get(d)
	c.picker = newPickerModel(c.cat, d, id, ok)
	c.sheetOpen = true
	c.tap = c.tap.reset()
}

func (c *calendarModel) closePicker() {
	c.sheetOpen = false
	c.tap = c.tap.reset()
}

func (c calendarModel) updateSheet(msg tea.KeyMsg) (calendarModel, tea.Cmd) {
	p, res, id := c.picker.update(msg)
	c.picker = p
	d := p.date

	switch res {
	case pickSelect:
		c.closePicker()
		it, _ := c.cat.Lookup(id)
		return c, c.commit(store.Set(d, id, c.records), fmt.Sprintf("%s: %s", d, it.Name))
	case pickClear:
		c.closePicker()
		return c, c.commit(store.Delete(d, c.records), fmt.Sprintf("%s: cleared", d))
	case pickClose:
		c.closePicker()
	}
	return c, nil
}

// commit persists next and adopts it. On a failed write the previous mapping
// stays in place.
func (c *calendarModel) commit(next store.Records, text string) tea.Cmd {
	if err := c.store.SaveRecords(next); err != nil {
		c.log.Error("save failed", "error", err)
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
	}
	c.records = next
	c.log.Info("records saved", "count", len(next))
	return func() tea.Msg {
		return recordsSavedMsg{records: next, text: text}
	}
}

// --- Rendering ---

func (c calendarModel) view() string {
	if c.width < 20 {
		return "Terminal too small"
	}
	w := c.width - 4

	title := titleStyle.Render(c.cursor.Format("January 2006"))
	nav := mutedStyle.Render("  [/]: month  t: today  n: record today")

	var preview string
	if c.tap.previewing {
		if t, ok := c.tap.date.Time(); ok {
			it, _ := c.cat.Lookup(c.records[c.tap.date])
			preview = highlightStyle.Render(fmt.Sprintf("%s · %s", t.Format("Jan 2"), it.Name))
			preview += mutedStyle.Render("  enter again to change")
		}
	} else {
		preview = mutedStyle.Render("enter: preview a worn day or pick for an empty one")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, nav),
		"",
		c.renderGrid(),
		"",
		preview,
	)
	panel := panelStyle.Width(w).Render(body)

	if c.sheetOpen {
		return lipgloss.JoinVertical(lipgloss.Left, panel, c.picker.view(w))
	}
	return panel
}

func (c calendarModel) cellWidth() int {
	if c.gridLabels != labelsShort {
		return 6
	}
	n := 0
	for _, it := range c.cat.Items() {
		n = max(n, len([]rune(it.Short)))
	}
	return min(max(n+4, 6), 14)
}

func (c calendarModel) renderGrid() string {
	cw := c.cellWidth()
	y, m, _ := c.cursor.Date()
	today := store.DateKeyOf(c.now())
	cur := c.cursorKey()

	var header []string
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(c.weekStart) + i) % 7)
		header = append(header, weekdayStyle.Width(cw).Render(wd.String()[:2]))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range monthGrid(y, m, c.weekStart) {
		var cells []string
		for _, day := range week {
			if day == 0 {
				cells = append(cells, lipgloss.NewStyle().Width(cw).Render(""))
				continue
			}
			d := store.DateKeyOf(time.Date(y, m, day, 0, 0, 0, 0, c.cursor.Location()))
			text := fmt.Sprintf("%2d %s", day, c.cellLabel(d, cw-3))

			style := cellStyle
			switch {
			case d == cur:
				style = cellCursorStyle
			case d == today:
				style = cellTodayStyle
			case !c.filled(d):
				style = cellEmptyStyle
			}
			cells = append(cells, style.Width(cw).Render(text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (c calendarModel) cellLabel(d store.DateKey, room int) string {
	if !c.filled(d) {
		return "—"
	}
	if c.gridLabels == labelsShort {
		it, _ := c.cat.Lookup(c.records[d])
		return truncate(it.Short, room)
	}
	return "✓"
}

// monthGrid lays out the days of a month in weeks starting on weekStart.
// Zero marks a padding cell.
func monthGrid(year int, month time.Month, weekStart time.Weekday) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7

	cells := make([]int, offset, offset+31+6)
	for d := 1; d <= daysIn(year, month); d++ {
		cells = append(cells, d)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}

	weeks := make([][]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
