package calendar

import "time"

type Mode string

const (
	ModeMonth Mode = "month"
	ModeWeek  Mode = "week"
)

// Navigator tracks which part of the calendar is displayed. The month anchor
// and the week offset are independent positions: switching modes only changes
// which one drives rendering, it never resets the other.
type Navigator struct {
	mode   Mode
	anchor time.Time // first day of the displayed month
	offset int       // weeks away from the week containing today
}

func NewNavigator(now time.Time) *Navigator {
	return &Navigator{
		mode:   ModeMonth,
		anchor: firstOfMonth(now),
		offset: 0,
	}
}

func (n *Navigator) Mode() Mode        { return n.mode }
func (n *Navigator) Anchor() time.Time { return n.anchor }
func (n *Navigator) WeekOffset() int   { return n.offset }

func (n *Navigator) SetMode(mode Mode) {
	if mode == ModeMonth || mode == ModeWeek {
		n.mode = mode
	}
}

// The anchor is always pinned to day 1, so adding a month can never skip or
// clamp (there is no "Jan 31 + 1 month" case).
func (n *Navigator) PreviousMonth() { n.anchor = n.anchor.AddDate(0, -1, 0) }
func (n *Navigator) NextMonth()     { n.anchor = n.anchor.AddDate(0, 1, 0) }

// Week navigation is an unbounded counter; arbitrarily far past and future
// weeks are allowed.
func (n *Navigator) PreviousWeek() { n.offset-- }
func (n *Navigator) NextWeek()     { n.offset++ }

// GoToToday resets both positions regardless of the active mode.
func (n *Navigator) GoToToday(now time.Time) {
	n.anchor = firstOfMonth(now)
	n.offset = 0
}

// Grid renders whichever view the current mode selects.
func (n *Navigator) Grid(now time.Time) []Cell {
	if n.mode == ModeWeek {
		return WeekGrid(n.offset, now)
	}
	return MonthGrid(n.anchor)
}

func firstOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
