package domain

import (
	"time"

	"github.com/nailsrdv/NRDV-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// allowedTransitions declares the lifecycle state machine.
// Terminal states have no outgoing edges.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// IsValidStatus reports whether s is a known appointment status
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment represents a booked time slot on a provider's calendar.
// Duration and price are captured from the catalog at booking time and
// never recomputed afterwards.
type Appointment struct {
	ID         int64
	ProviderID int64
	UserID     *int64 // set for account clients

	// Guest identity for bookings without an account
	ClientName  *string
	ClientPhone *string

	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Price           float64
	Status          AppointmentStatus
	Notes           *string

	// Denormalized for history
	ServiceName string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies calendar time
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true if the appointment reached a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusNoShow
}

// CanTransitionTo reports whether the lifecycle allows moving to target
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	for _, next := range allowedTransitions[a.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsOwnedByUser returns true if the appointment belongs to the given account
func (a *Appointment) IsOwnedByUser(userID int64) bool {
	return a.UserID != nil && *a.UserID == userID
}

// End returns the end of the appointment's half-open interval [start, start+duration)
func (a *Appointment) End() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// Overlaps reports whether the appointment interval overlaps [start, end)
// on the same date. Strict inequalities: back-to-back intervals do not overlap.
func (a *Appointment) Overlaps(start, end types.TimeString) bool {
	aEnd, err := a.End()
	if err != nil {
		return false
	}
	return a.StartTime.IsBefore(end) && aEnd.IsAfter(start)
}

// PeriodFilter partitions appointments relative to "now"
type PeriodFilter string

const (
	FilterAll      PeriodFilter = "all"
	FilterUpcoming PeriodFilter = "upcoming"
	FilterToday    PeriodFilter = "today"
	FilterPast     PeriodFilter = "past"
)

// IsValidPeriodFilter reports whether f is a known filter value
func IsValidPeriodFilter(f PeriodFilter) bool {
	switch f {
	case FilterAll, FilterUpcoming, FilterToday, FilterPast:
		return true
	}
	return false
}

// AppointmentsFilter defines the query for appointment listings
type AppointmentsFilter struct {
	ProviderID *int64
	UserID     *int64
	Period     PeriodFilter
	Status     *AppointmentStatus
	Now        time.Time // reference instant for Period partitioning
}
