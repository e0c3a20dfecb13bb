package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/klarrein/dashboard/internal/calendar"
	"github.com/klarrein/dashboard/internal/model"
	"github.com/klarrein/dashboard/internal/schedule"
)

// CalendarHandler serves the calendar page. The navigator holds the view
// the office is currently looking at (month or week plus position), so
// prev/next/today act relative to it.
type CalendarHandler struct {
	mu   sync.Mutex
	nav  *calendar.Navigator
	book *schedule.Book
	now  func() time.Time
}

func NewCalendarHandler(book *schedule.Book, now func() time.Time) *CalendarHandler {
	if now == nil {
		now = time.Now
	}
	return &CalendarHandler{
		nav:  calendar.NewNavigator(now()),
		book: book,
		now:  now,
	}
}

// cellView is a grid cell with the day's appointments bound to it, ordered
// by start time. Padding cells carry no appointments.
type cellView struct {
	calendar.Cell
	Appointments []appointmentResponse `json:"appointments,omitempty"`
}

type calendarView struct {
	Mode  calendar.Mode `json:"mode"`
	Title string        `json:"title"`
	Days  []string      `json:"days"`
	Cells []cellView    `json:"cells"`
}

func (h *CalendarHandler) bindCells(cells []calendar.Cell) []cellView {
	out := make([]cellView, 0, len(cells))
	for _, cell := range cells {
		view := cellView{Cell: cell}
		if !cell.Empty() {
			for _, appt := range h.book.AppointmentsOn(cell.Date) {
				view.Appointments = append(view.Appointments, appointmentResponse{
					Appointment: appt,
					Category:    model.WorkerCategory(appt.Worker),
				})
			}
		}
		out = append(out, view)
	}
	return out
}

// View returns the grid the navigator currently points at.
func (h *CalendarHandler) View(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	view := h.buildView()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

// Navigate applies one navigation action and returns the resulting view.
func (h *CalendarHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Action string `json:"action"`
		Mode   string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Action = strings.TrimSpace(req.Action)

	h.mu.Lock()
	defer h.mu.Unlock()

	switch req.Action {
	case "previous":
		if h.nav.Mode() == calendar.ModeWeek {
			h.nav.PreviousWeek()
		} else {
			h.nav.PreviousMonth()
		}
	case "next":
		if h.nav.Mode() == calendar.ModeWeek {
			h.nav.NextWeek()
		} else {
			h.nav.NextMonth()
		}
	case "today":
		h.nav.GoToToday(h.now())
	case "set_mode":
		switch calendar.Mode(strings.TrimSpace(req.Mode)) {
		case calendar.ModeMonth:
			h.nav.SetMode(calendar.ModeMonth)
		case calendar.ModeWeek:
			h.nav.SetMode(calendar.ModeWeek)
		default:
			http.Error(w, "mode must be month or week", http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.buildView())
}

// Month returns the grid for an explicit year/month without touching the
// shared navigator. Defaults to the current month.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := h.now()
	year := now.Year()
	month := int(now.Month())
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		month = n
	}

	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	writeJSON(w, http.StatusOK, calendarView{
		Mode:  calendar.ModeMonth,
		Title: calendar.MonthTitle(ref),
		Days:  calendar.DayNames,
		Cells: h.bindCells(calendar.MonthGrid(ref)),
	})
}

// Week returns the week grid at an offset from the current week.
func (h *CalendarHandler) Week(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid offset", http.StatusBadRequest)
			return
		}
		offset = n
	}

	cells := calendar.WeekGrid(offset, h.now())
	writeJSON(w, http.StatusOK, calendarView{
		Mode:  calendar.ModeWeek,
		Title: calendar.WeekTitle(cells),
		Days:  calendar.DayNames,
		Cells: h.bindCells(cells),
	})
}

func (h *CalendarHandler) buildView() calendarView {
	cells := h.nav.Grid(h.now())
	view := calendarView{
		Mode:  h.nav.Mode(),
		Days:  calendar.DayNames,
		Cells: h.bindCells(cells),
	}
	if h.nav.Mode() == calendar.ModeWeek {
		view.Title = calendar.WeekTitle(cells)
	} else {
		view.Title = calendar.MonthTitle(h.nav.Anchor())
	}
	return view
}
