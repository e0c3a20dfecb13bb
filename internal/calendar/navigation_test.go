package calendar

import (
	"testing"
	"time"
)

func TestNavigatorMonthRollover(t *testing.T) {
	nav := NewNavigator(date(t, 2025, time.January, 15))
	nav.PreviousMonth()
	if y, m, _ := nav.Anchor().Date(); y != 2024 || m != time.December {
		t.Fatalf("expected Dec 2024, got %d-%s", y, m)
	}
	nav.NextMonth()
	nav.NextMonth()
	if y, m, _ := nav.Anchor().Date(); y != 2025 || m != time.February {
		t.Fatalf("expected Feb 2025, got %d-%s", y, m)
	}
}

func TestNavigatorWeekOffsetUnbounded(t *testing.T) {
	nav := NewNavigator(date(t, 2025, time.January, 15))
	for i := 0; i < 120; i++ {
		nav.PreviousWeek()
	}
	if nav.WeekOffset() != -120 {
		t.Fatalf("expected offset -120, got %d", nav.WeekOffset())
	}
	for i := 0; i < 240; i++ {
		nav.NextWeek()
	}
	if nav.WeekOffset() != 120 {
		t.Fatalf("expected offset 120, got %d", nav.WeekOffset())
	}
}

func TestNavigatorModeSwitchKeepsPositions(t *testing.T) {
	nav := NewNavigator(date(t, 2025, time.January, 15))
	nav.NextMonth()
	nav.NextWeek()
	nav.NextWeek()

	nav.SetMode(ModeWeek)
	if y, m, _ := nav.Anchor().Date(); y != 2025 || m != time.February {
		t.Fatalf("mode switch reset the month anchor: %d-%s", y, m)
	}
	nav.SetMode(ModeMonth)
	if nav.WeekOffset() != 2 {
		t.Fatalf("mode switch reset the week offset: %d", nav.WeekOffset())
	}
}

func TestNavigatorGoToToday(t *testing.T) {
	now := date(t, 2025, time.March, 10)
	nav := NewNavigator(now)
	nav.SetMode(ModeWeek)
	nav.PreviousMonth()
	nav.PreviousWeek()

	nav.GoToToday(now)
	if y, m, _ := nav.Anchor().Date(); y != 2025 || m != time.March {
		t.Fatalf("expected anchor back at Mar 2025, got %d-%s", y, m)
	}
	if nav.WeekOffset() != 0 {
		t.Fatalf("expected offset 0, got %d", nav.WeekOffset())
	}
	if nav.Mode() != ModeWeek {
		t.Fatalf("GoToToday must not change the mode")
	}
}

func TestNavigatorGridFollowsMode(t *testing.T) {
	now := date(t, 2025, time.January, 22)
	nav := NewNavigator(now)

	if got := len(nav.Grid(now)); got != 33 {
		t.Fatalf("month grid for Jan 2025 should have 33 cells, got %d", got)
	}
	nav.SetMode(ModeWeek)
	if got := len(nav.Grid(now)); got != 7 {
		t.Fatalf("week grid should have 7 cells, got %d", got)
	}
}
