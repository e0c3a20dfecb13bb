package calendar

import (
	"fmt"
	"time"
)

// German display names. The grid logic itself is locale-independent; only the
// labels shipped to the dashboard are localized.
var DayNames = []string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}

var monthNames = []string{
	"",
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m]
}

// MonthTitle renders the month header, e.g. "Januar 2025".
func MonthTitle(anchor time.Time) string {
	return fmt.Sprintf("%s %d", MonthName(anchor.Month()), anchor.Year())
}

// WeekTitle renders the week header from the first and last cell of a week
// grid, e.g. "29.12. - 04.01.2026".
func WeekTitle(cells []Cell) string {
	if len(cells) == 0 {
		return ""
	}
	first, err1 := time.Parse(DateLayout, cells[0].Date)
	last, err2 := time.Parse(DateLayout, cells[len(cells)-1].Date)
	if err1 != nil || err2 != nil {
		return ""
	}
	return first.Format("02.01.") + " - " + last.Format("02.01.2006")
}

// DisplayDate renders a plain date the way the dashboard shows it,
// e.g. "20.01.2025". Returns the input unchanged if it is not a valid date.
func DisplayDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02.01.2006")
}
