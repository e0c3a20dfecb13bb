package schedule

import (
	"context"
	"testing"

	"github.com/klarrein/dashboard/internal/model"
)

type fakeLookup struct {
	clients map[string]model.Client
}

func (f *fakeLookup) GetByID(_ context.Context, id string) (model.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return model.Client{}, errNotFound
	}
	return c, nil
}

var errNotFound = &lookupError{}

type lookupError struct{}

func (*lookupError) Error() string { return "client not found" }

func validDraft() Draft {
	return Draft{
		Customer: "Maria Schmidt",
		Worker:   "Anna Müller",
		Service:  "Grundreinigung",
		Date:     "2025-01-20",
		Time:     "09:00",
		Duration: "2h",
		Address:  "Hauptstraße 15, 10115 Berlin",
	}
}

func TestAppointmentsOnSortsByTime(t *testing.T) {
	book := NewBook(
		model.Appointment{ID: "1", Date: "2025-01-20", Time: "14:00", Customer: "A"},
		model.Appointment{ID: "2", Date: "2025-01-20", Time: "09:00", Customer: "B"},
		model.Appointment{ID: "3", Date: "2025-01-21", Time: "08:00", Customer: "C"},
	)

	got := book.AppointmentsOn("2025-01-20")
	if len(got) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(got))
	}
	if got[0].Time != "09:00" || got[1].Time != "14:00" {
		t.Fatalf("wrong order: %s then %s", got[0].Time, got[1].Time)
	}
	for _, appt := range got {
		if appt.Date != "2025-01-20" {
			t.Fatalf("appointment from wrong date leaked in: %+v", appt)
		}
	}
}

func TestAppointmentsOnReturnsCopy(t *testing.T) {
	book := NewBook(model.Appointment{ID: "1", Date: "2025-01-20", Time: "09:00", Customer: "A"})

	first := book.AppointmentsOn("2025-01-20")
	first[0].Customer = "mutated"

	second := book.AppointmentsOn("2025-01-20")
	if second[0].Customer != "A" {
		t.Fatalf("caller mutation reached shared state: %+v", second[0])
	}
}

func TestAppointmentsOnIdempotent(t *testing.T) {
	book := NewBook(
		model.Appointment{ID: "1", Date: "2025-01-20", Time: "14:00"},
		model.Appointment{ID: "2", Date: "2025-01-20", Time: "09:00"},
	)
	a := book.AppointmentsOn("2025-01-20")
	b := book.AppointmentsOn("2025-01-20")
	if len(a) != len(b) {
		t.Fatalf("lengths differ")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("result %d differs across calls", i)
		}
	}
}

func TestCreateAssignsIDAndPendingStatus(t *testing.T) {
	book := NewBook()
	appt, err := book.Create(context.Background(), validDraft(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.ID == "" {
		t.Fatal("expected a generated id")
	}
	if appt.Status != model.StatusPending {
		t.Fatalf("expected pending status, got %q", appt.Status)
	}

	// Immediately visible to the next read.
	got := book.AppointmentsOn("2025-01-20")
	if len(got) != 1 || got[0].ID != appt.ID {
		t.Fatalf("created appointment not visible: %+v", got)
	}
}

func TestCreateExistingCustomerCopiesStoredValues(t *testing.T) {
	lookup := &fakeLookup{clients: map[string]model.Client{
		"c-1": {ID: "c-1", Name: "Familie Weber", Address: "Gartenstraße 8, 80331 München"},
	}}
	book := NewBook()

	draft := validDraft()
	draft.Customer = "stale typed name"
	draft.Address = "stale typed address"

	appt, err := book.Create(context.Background(), draft, model.ExistingCustomer{ID: "c-1"}, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Customer != "Familie Weber" {
		t.Fatalf("expected stored name, got %q", appt.Customer)
	}
	if appt.Address != "Gartenstraße 8, 80331 München" {
		t.Fatalf("expected stored address, got %q", appt.Address)
	}
}

func TestCreateExistingCustomerWithoutID(t *testing.T) {
	book := NewBook()
	_, err := book.Create(context.Background(), validDraft(), model.ExistingCustomer{}, &fakeLookup{})
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if book.Len() != 0 {
		t.Fatalf("failed create must not append, have %d", book.Len())
	}
}

func TestCreateUnknownCustomerPropagatesLookupError(t *testing.T) {
	book := NewBook()
	_, err := book.Create(context.Background(), validDraft(), model.ExistingCustomer{ID: "nope"}, &fakeLookup{})
	if err == nil || IsValidationError(err) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if book.Len() != 0 {
		t.Fatalf("failed create must not append")
	}
}

func TestCreateEmptyDraftFails(t *testing.T) {
	book := NewBook()
	_, err := book.Create(context.Background(), Draft{}, nil, nil)
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if book.Len() != 0 {
		t.Fatalf("collection length changed on failed create")
	}
}

func TestCreateRejectsBadDateAndTime(t *testing.T) {
	book := NewBook()

	draft := validDraft()
	draft.Date = "20.01.2025"
	if _, err := book.Create(context.Background(), draft, nil, nil); !IsValidationError(err) {
		t.Fatalf("expected ValidationError for bad date, got %v", err)
	}

	draft = validDraft()
	draft.Time = "25:61"
	if _, err := book.Create(context.Background(), draft, nil, nil); !IsValidationError(err) {
		t.Fatalf("expected ValidationError for bad time, got %v", err)
	}
}

func TestCreateNormalizesTime(t *testing.T) {
	book := NewBook()
	draft := validDraft()
	draft.Time = "9:05"
	appt, err := book.Create(context.Background(), draft, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Time != "09:05" {
		t.Fatalf("expected zero-padded time, got %q", appt.Time)
	}
}

func TestStats(t *testing.T) {
	book := NewBook(
		model.Appointment{ID: "1", Worker: "Anna Müller", Status: model.StatusConfirmed},
		model.Appointment{ID: "2", Worker: "Anna Müller", Status: model.StatusPending},
		model.Appointment{ID: "3", Worker: "Klaus Fischer", Status: model.StatusConfirmed},
	)
	stats := book.Stats()
	if stats.Total != 3 || stats.Confirmed != 2 || stats.Pending != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ActiveWorkers != 2 {
		t.Fatalf("expected 2 distinct workers, got %d", stats.ActiveWorkers)
	}
}
