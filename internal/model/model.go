package model

// Appointment statuses form a small closed set. New appointments always start
// out pending and are confirmed by the office later.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment is a single cleaning job on the calendar. Date is a plain
// calendar date ("2006-01-02") with no time-of-day component; Time is a
// zero-padded 24h clock ("15:04") so that lexicographic order equals
// chronological order within a day.
type Appointment struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Worker   string `json:"worker"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Address  string `json:"address"`
	Service  string `json:"service"`
	Duration string `json:"duration"`
	Status   string `json:"status"`
}

// Worker is a member of the cleaning team.
type Worker struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Specialties  string  `json:"specialties"`
	HourlyRate   float64 `json:"hourly_rate"`
	Availability string  `json:"availability"`
	Notes        string  `json:"notes"`
}

// Client is a customer of the business. Name and Address are copied into an
// appointment when the client is picked from the existing-customer dropdown.
type Client struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ServiceType string `json:"service_type"`
	Frequency   string `json:"frequency"`
	Notes       string `json:"notes"`
}

// CustomerSelection is the customer half of an appointment draft. A draft
// either references an existing client by id or carries a fresh name and
// address; the two modes cannot be combined.
type CustomerSelection interface {
	isCustomerSelection()
}

type ExistingCustomer struct {
	ID string
}

type NewCustomer struct {
	Name    string
	Address string
}

func (ExistingCustomer) isCustomerSelection() {}
func (NewCustomer) isCustomerSelection()      {}
