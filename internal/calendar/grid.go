package calendar

import "time"

// DateLayout is the wire format for plain calendar dates.
const DateLayout = "2006-01-02"

// Cell is one position in a rendered calendar grid. Leading padding cells in
// a month grid carry Day 0 and an empty Date; all other cells are bound to a
// concrete date.
type Cell struct {
	Day  int    `json:"day"`
	Date string `json:"date,omitempty"`
}

func (c Cell) Empty() bool {
	return c.Day == 0
}

// mondayIndex remaps time.Weekday so that Monday = 0 .. Sunday = 6.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// MonthGrid builds the month view for the month containing ref. The result is
// a run of padding cells (so day 1 lands in its weekday column, weeks starting
// Monday) followed by one cell per day of the month. Only ref's year and month
// matter; day-of-month and time-of-day are ignored.
func MonthGrid(ref time.Time) []Cell {
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	padding := mondayIndex(first.Weekday())
	// Day zero of the next month is the last day of this one.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]Cell, 0, padding+daysInMonth)
	for i := 0; i < padding; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cells = append(cells, Cell{Day: day, Date: date.Format(DateLayout)})
	}
	return cells
}

// WeekGrid builds the week view for the week offset whole weeks away from the
// week containing now (0 = current week, negative = past). It always returns
// exactly 7 cells, Monday through Sunday, each bound to a date. Month and year
// boundaries inside the week are handled by calendar-correct date addition.
func WeekGrid(offset int, now time.Time) []Cell {
	monday := now.AddDate(0, 0, -mondayIndex(now.Weekday())+offset*7)
	cells := make([]Cell, 0, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		cells = append(cells, Cell{Day: date.Day(), Date: date.Format(DateLayout)})
	}
	return cells
}
