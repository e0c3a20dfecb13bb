package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/klarrein/dashboard/internal/events"
	"github.com/klarrein/dashboard/internal/model"
	"github.com/klarrein/dashboard/internal/schedule"
	"github.com/klarrein/dashboard/internal/storage"
)

type AppointmentHandler struct {
	book    *schedule.Book
	clients schedule.CustomerLookup
	events  *events.Publisher
}

func NewAppointmentHandler(book *schedule.Book, clients schedule.CustomerLookup, publisher *events.Publisher) *AppointmentHandler {
	return &AppointmentHandler{book: book, clients: clients, events: publisher}
}

type createAppointmentRequest struct {
	schedule.Draft
	UseExisting bool   `json:"use_existing"`
	CustomerID  string `json:"customer_id"`
}

type appointmentResponse struct {
	model.Appointment
	Category string `json:"category"`
}

// List returns all appointments, or only those on one date when ?date= is
// given. The per-date listing is sorted by start time. Each entry carries
// the color category of its worker for the calendar tiles.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var appointments []model.Appointment
	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		appointments = h.book.AppointmentsOn(date)
	} else {
		appointments = h.book.All()
	}
	out := make([]appointmentResponse, 0, len(appointments))
	for _, appt := range appointments {
		out = append(out, appointmentResponse{
			Appointment: appt,
			Category:    model.WorkerCategory(appt.Worker),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	var sel model.CustomerSelection
	if req.UseExisting {
		sel = model.ExistingCustomer{ID: strings.TrimSpace(req.CustomerID)}
	} else {
		sel = model.NewCustomer{Name: req.Draft.Customer, Address: req.Draft.Address}
	}

	appt, err := h.book.Create(r.Context(), req.Draft, sel, h.clients)
	if err != nil {
		var v *schedule.ValidationError
		if errors.As(err, &v) {
			http.Error(w, v.Field+" is required or invalid", http.StatusBadRequest)
			return
		}
		if storage.IsNotFound(err) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}

	if h.events != nil {
		h.events.Publish(r.Context(), events.AppointmentCreated, appt.ID, appt)
	}
	writeJSON(w, http.StatusCreated, appt)
}
