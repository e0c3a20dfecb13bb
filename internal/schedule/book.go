package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/klarrein/dashboard/internal/calendar"
	"github.com/klarrein/dashboard/internal/model"
)

// ValidationError reports a missing or malformed required field in an
// appointment draft. It is rendered inline next to the form field and never
// touches other records.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid appointment draft: field %q", e.Field)
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// CustomerLookup resolves an existing client so the draft can copy its stored
// name and address. Implemented by the client repository.
type CustomerLookup interface {
	GetByID(ctx context.Context, id string) (model.Client, error)
}

// Draft is user-entered, not-yet-validated appointment data. Customer and
// Address may hold stale manually typed values; when an existing customer is
// selected those are overridden by the stored client record.
type Draft struct {
	Customer string `json:"customer"`
	Worker   string `json:"worker"`
	Service  string `json:"service"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Address  string `json:"address"`
}

// Book holds the appointments of the current session. Reads and writes are
// serialized; every operation runs to completion under the lock, so a created
// appointment is visible to the very next read.
type Book struct {
	mu           sync.RWMutex
	appointments []model.Appointment
}

func NewBook(seed ...model.Appointment) *Book {
	b := &Book{}
	b.appointments = append(b.appointments, seed...)
	return b
}

// All returns a copy of every appointment in creation order.
func (b *Book) All() []model.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Appointment, len(b.appointments))
	copy(out, b.appointments)
	return out
}

// AppointmentsOn returns the appointments on exactly the given calendar date,
// sorted ascending by start time. Times are stored zero-padded, so the
// lexicographic sort is chronological. The result is a copy; callers cannot
// reach shared state through it.
func (b *Book) AppointmentsOn(date string) []model.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []model.Appointment
	for _, appt := range b.appointments {
		if appt.Date == date {
			out = append(out, appt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// Create validates a draft, resolves the customer selection and appends the
// new appointment. The id is freshly generated and the status always starts
// as pending, whatever the draft said. On any error nothing is appended.
func (b *Book) Create(ctx context.Context, draft Draft, sel model.CustomerSelection, clients CustomerLookup) (model.Appointment, error) {
	switch s := sel.(type) {
	case model.ExistingCustomer:
		if strings.TrimSpace(s.ID) == "" {
			return model.Appointment{}, &ValidationError{Field: "customer"}
		}
		if clients == nil {
			return model.Appointment{}, errors.New("no customer lookup configured")
		}
		client, err := clients.GetByID(ctx, s.ID)
		if err != nil {
			return model.Appointment{}, err
		}
		// Stored values win over anything typed into the form.
		draft.Customer = client.Name
		draft.Address = client.Address
	case model.NewCustomer:
		draft.Customer = s.Name
		draft.Address = s.Address
	}

	draft.Customer = strings.TrimSpace(draft.Customer)
	draft.Worker = strings.TrimSpace(draft.Worker)
	draft.Service = strings.TrimSpace(draft.Service)
	draft.Date = strings.TrimSpace(draft.Date)
	draft.Time = strings.TrimSpace(draft.Time)
	draft.Duration = strings.TrimSpace(draft.Duration)
	draft.Address = strings.TrimSpace(draft.Address)

	for _, field := range []struct {
		name  string
		value string
	}{
		{"customer", draft.Customer},
		{"worker", draft.Worker},
		{"service", draft.Service},
		{"date", draft.Date},
		{"time", draft.Time},
		{"duration", draft.Duration},
		{"address", draft.Address},
	} {
		if field.value == "" {
			return model.Appointment{}, &ValidationError{Field: field.name}
		}
	}

	if _, err := time.Parse(calendar.DateLayout, draft.Date); err != nil {
		return model.Appointment{}, &ValidationError{Field: "date"}
	}
	// Normalize to zero-padded 24h so lexicographic order stays chronological.
	clock, err := time.Parse("15:04", draft.Time)
	if err != nil {
		return model.Appointment{}, &ValidationError{Field: "time"}
	}
	draft.Time = clock.Format("15:04")

	appt := model.Appointment{
		ID:       uuid.NewString(),
		Customer: draft.Customer,
		Worker:   draft.Worker,
		Date:     draft.Date,
		Time:     draft.Time,
		Address:  draft.Address,
		Service:  draft.Service,
		Duration: draft.Duration,
		Status:   model.StatusPending,
	}

	b.mu.Lock()
	b.appointments = append(b.appointments, appt)
	b.mu.Unlock()
	return appt, nil
}

// Len reports the number of appointments in the book.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.appointments)
}
