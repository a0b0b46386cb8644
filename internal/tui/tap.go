package tui

import "github.com/sadopc/wristtrack/internal/store"

// tapState is the two-step selection state of the calendar. A filled date
// needs two taps to open the picker; the first one only previews it.
type tapState struct {
	previewing bool
	date       store.DateKey
}

type tapAction int

const (
	tapNone tapAction = iota
	tapPreview
	tapOpenPicker
)

func (s tapState) idle() bool { return !s.previewing }

// tap applies a tap on d. filled is whether d has a record with a known item.
func (s tapState) tap(d store.DateKey, filled bool) (tapState, tapAction) {
	if !filled {
		return tapState{}, tapOpenPicker
	}
	if s.previewing && s.date == d {
		return tapState{}, tapOpenPicker
	}
	return tapState{previewing: true, date: d}, tapPreview
}

// reset returns the idle state. Navigation and closing the picker go through
// here.
func (s tapState) reset() tapState { return tapState{} }
