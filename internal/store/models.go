package store

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey is a local calendar date formatted YYYY-MM-DD.
type DateKey string

// ParseDateKey validates s as a zero-padded YYYY-MM-DD date.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil || t.Format(dateLayout) != s {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return DateKey(s), nil
}

// DateKeyOf formats t in its own location; no timezone conversion happens.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

// Time returns midnight of the date in the local zone.
func (d DateKey) Time() (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d DateKey) String() string { return string(d) }

// Records maps a date to the catalog item id recorded for it.
type Records map[DateKey]string

type Setting struct {
	Key   string
	Value string
}

const (
	SettingWeekStart  = "week_start"
	SettingGridLabels = "grid_labels"
)
