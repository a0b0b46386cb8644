// Package stats derives per-period usage counts and ratios from records.
// Everything here is pure; callers recompute on demand.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sadopc/wristtrack/internal/catalog"
	"github.com/sadopc/wristtrack/internal/store"
)

// Period is a year, or a month of a year when Month is non-zero.
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) IsMonth() bool { return p.Month != 0 }

func (p Period) String() string {
	if p.IsMonth() {
		return fmt.Sprintf("%s %d", p.Month, p.Year)
	}
	return fmt.Sprintf("%d", p.Year)
}

func (p Period) contains(t time.Time) bool {
	if t.Year() != p.Year {
		return false
	}
	return !p.IsMonth() || t.Month() == p.Month
}

// PeriodStats holds counts and percentage ratios per catalog item. Counts and
// Ratios carry an entry for every catalog item, zero or not.
type PeriodStats struct {
	Period Period
	Total  int
	Counts map[string]int
	Ratios map[string]float64
}

// Row is one catalog item's line in a period.
type Row struct {
	Item  catalog.Item
	Count int
	Ratio float64
}

// Monthly aggregates the records dated in the given year and month.
func Monthly(r store.Records, c *catalog.Catalog, year int, month time.Month) PeriodStats {
	return aggregate(r, c, Period{Year: year, Month: month})
}

// Yearly aggregates the records dated in the given year.
func Yearly(r store.Records, c *catalog.Catalog, year int) PeriodStats {
	return aggregate(r, c, Period{Year: year})
}

func aggregate(r store.Records, c *catalog.Catalog, p Period) PeriodStats {
	ps := PeriodStats{
		Period: p,
		Counts: make(map[string]int, c.Len()),
		Ratios: make(map[string]float64, c.Len()),
	}
	for _, it := range c.Items() {
		ps.Counts[it.ID] = 0
	}

	for d, id := range r {
		t, ok := d.Time()
		if !ok || !p.contains(t) {
			continue
		}
		// Records pointing outside the catalog count as no record.
		if !c.Contains(id) {
			continue
		}
		ps.Counts[id]++
		ps.Total++
	}

	for id, n := range ps.Counts {
		if ps.Total == 0 {
			ps.Ratios[id] = 0
			continue
		}
		ps.Ratios[id] = round1(float64(n) / float64(ps.Total) * 100)
	}
	return ps
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Rows returns one row per catalog item in catalog order.
func (ps PeriodStats) Rows(c *catalog.Catalog) []Row {
	rows := make([]Row, 0, c.Len())
	for _, it := range c.Items() {
		rows = append(rows, Row{Item: it, Count: ps.Counts[it.ID], Ratio: ps.Ratios[it.ID]})
	}
	return rows
}

// Ranked returns the rows ordered by ratio, highest first. Ties keep catalog
// order.
func (ps PeriodStats) Ranked(c *catalog.Catalog) []Row {
	rows := ps.Rows(c)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Ratio > rows[j].Ratio })
	return rows
}

// Shares returns the rows with a non-zero ratio, in catalog order.
func (ps PeriodStats) Shares(c *catalog.Catalog) []Row {
	var rows []Row
	for _, row := range ps.Rows(c) {
		if row.Ratio > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// Years lists the distinct years that have records, plus now's year, newest
// first.
func Years(r store.Records, now time.Time) []int {
	seen := map[int]bool{now.Year(): true}
	for d := range r {
		if t, ok := d.Time(); ok {
			seen[t.Year()] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
