package tui

import (
	"github.com/sadopc/wristtrack/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCalendar viewState = iota
	viewStats
	viewSettings
)

var viewNames = []string{"Calendar", "Stats", "Settings"}

// --- Messages ---

type recordsLoadedMsg struct {
	records store.Records
}

// recordsSavedMsg carries the mapping after a successful write.
type recordsSavedMsg struct {
	records store.Records
	text    string
}

type settingsSavedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
