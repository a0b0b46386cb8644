package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sadopc/wristtrack/internal/catalog"
	"github.com/sadopc/wristtrack/internal/stats"
	"github.com/sadopc/wristtrack/internal/store"
)

type statsModel struct {
	cat    *catalog.Catalog
	now    func() time.Time
	width  int
	height int

	records store.Records
	years   []int
	yearIdx int
	month   time.Month

	monthly    stats.PeriodStats
	yearly     stats.PeriodStats
	monthChart barchart.Model
	yearChart  barchart.Model
}

func newStatsModel(cat *catalog.Catalog, now func() time.Time) statsModel {
	m := statsModel{
		cat:   cat,
		now:   now,
		month: now().Month(),
	}
	m.setRecords(store.Records{})
	return m
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.recompute()
}

func (m statsModel) year() int {
	if len(m.years) == 0 {
		return m.now().Year()
	}
	return m.years[m.yearIdx]
}

// setRecords swaps in a new mapping and keeps the selected year when it is
// still listed.
func (m *statsModel) setRecords(r store.Records) {
	selected := m.year()
	m.records = r
	m.years = stats.Years(r, m.now())
	m.yearIdx = 0
	for i, y := range m.years {
		if y == selected {
			m.yearIdx = i
			break
		}
	}
	m.recompute()
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		m.setRecords(msg.records)
	case recordsSavedMsg:
		m.setRecords(msg.records)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.month = wrapMonth(m.month, -1)
		case key.Matches(msg, keys.Right):
			m.month = wrapMonth(m.month, 1)
		case key.Matches(msg, keys.Up):
			if m.yearIdx > 0 {
				m.yearIdx--
			}
		case key.Matches(msg, keys.Down):
			if m.yearIdx < len(m.years)-1 {
				m.yearIdx++
			}
		default:
			return m, nil
		}
		m.recompute()
	}
	return m, nil
}

func wrapMonth(m time.Month, delta int) time.Month {
	return time.Month((int(m)-1+delta%12+12)%12 + 1)
}

func (m *statsModel) recompute() {
	y := m.year()
	m.monthly = stats.Monthly(m.records, m.cat, y, m.month)
	m.yearly = stats.Yearly(m.records, m.cat, y)
	m.monthChart = m.buildChart(m.monthly)
	m.yearChart = m.buildChart(m.yearly)
}

// buildChart draws the ranked ratios as horizontal bars.
func (m statsModel) buildChart(ps stats.PeriodStats) barchart.Model {
	chartWidth := max(m.width-8, 20)
	chartHeight := max(m.cat.Len()*2, 4)

	chart := barchart.New(chartWidth, chartHeight, barchart.WithHorizontalBars())

	var bars []barchart.BarData
	for _, row := range ps.Ranked(m.cat) {
		style := lipgloss.NewStyle().Foreground(itemColor(m.cat.IndexOf(row.Item.ID)))
		bars = append(bars, barchart.BarData{
			Label: row.Item.Short,
			Values: []barchart.BarValue{{
				Name:  row.Item.Name,
				Value: row.Ratio,
				Style: style,
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (m statsModel) view() string {
	w := m.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		highlightStyle.Render(fmt.Sprintf("%s %d", m.month, m.year())),
	)
	nav := mutedStyle.Render("  ←/→: month  ↑/↓: year")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			m.renderPeriod(m.monthly, m.monthChart, w-6), "",
			m.renderPeriod(m.yearly, m.yearChart, w-6), "",
			nav,
		),
	)
}

func (m statsModel) renderPeriod(ps stats.PeriodStats, chart barchart.Model, w int) string {
	title := titleStyle.Render(ps.Period.String()) +
		mutedStyle.Render(fmt.Sprintf("  %d day(s)", ps.Total))

	if ps.Total == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("No records."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderShareBar(ps, max(w, 10)),
		m.renderLegend(ps),
		"",
		chart.View(),
		"",
		m.renderTable(ps),
	)
}

// renderShareBar draws one row split by share. Zero shares get no segment;
// every other share gets at least one cell and the row is exactly w wide
// unless there are more shares than cells.
func (m statsModel) renderShareBar(ps stats.PeriodStats, w int) string {
	shares := ps.Shares(m.cat)
	if len(shares) == 0 {
		return ""
	}
	w = max(w, len(shares))
	rest := w - len(shares)

	sum := 0.0
	for _, row := range shares {
		sum += row.Ratio
	}

	var b strings.Builder
	cum, prev := 0.0, 0
	for _, row := range shares {
		cum += row.Ratio
		target := int(math.Round(cum / sum * float64(rest)))
		seg := 1 + target - prev
		prev = target
		style := lipgloss.NewStyle().Foreground(itemColor(m.cat.IndexOf(row.Item.ID)))
		b.WriteString(style.Render(strings.Repeat("█", seg)))
	}
	return b.String()
}

func (m statsModel) renderLegend(ps stats.PeriodStats) string {
	var items []string
	for _, row := range ps.Shares(m.cat) {
		dot := lipgloss.NewStyle().Foreground(itemColor(m.cat.IndexOf(row.Item.ID))).Render("●")
		items = append(items, fmt.Sprintf("%s %s %.1f%%", dot, row.Item.Short, row.Ratio))
	}
	return strings.Join(items, "  ")
}

func (m statsModel) renderTable(ps stats.PeriodStats) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("Item", "Count", "Ratio(%)")
	for _, row := range ps.Rows(m.cat) {
		t.Row(row.Item.Name, strconv.Itoa(row.Count), fmt.Sprintf("%.1f", row.Ratio))
	}
	return t.Render()
}
