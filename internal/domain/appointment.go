package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusRequested  AppointmentStatus = "requested"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusCheckedIn  AppointmentStatus = "checked_in"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCheckedIn, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// AppointmentService is one service booked for one pet, frozen at booking time
type AppointmentService struct {
	ServiceID          int64
	AppliedModifierIDs []int64
	FinalDuration      int // minutes
	FinalPrice         decimal.Decimal
}

// AppointmentPet groups the services booked for a single pet
type AppointmentPet struct {
	PetID    int64
	Services []AppointmentService
}

// Appointment represents a booked grooming visit
type Appointment struct {
	ID             int64
	OrganizationID int64
	ClientID       int64
	GroomerID      *int64 // nil = not assigned to a staff member
	StartTime      time.Time
	EndTime        time.Time
	Status         AppointmentStatus
	Pets           []AppointmentPet

	DepositAmount decimal.Decimal
	DepositPaid   bool
	TotalAmount   decimal.Decimal

	// BufferMinutes is the staff buffer in effect when the slot was reserved.
	// The store blocks [StartTime, EndTime + BufferMinutes) for the groomer.
	BufferMinutes int

	CancellationFee *decimal.Decimal
	NoShowFee       *decimal.Decimal
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its groomer's time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment has not started or ended yet
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusRequested || a.Status == StatusConfirmed || a.Status == StatusCheckedIn
}

// CanBeMarkedNoShow returns true if the client could still have shown up
func (a *Appointment) CanBeMarkedNoShow() bool {
	return a.Status == StatusRequested || a.Status == StatusConfirmed
}

// DurationMinutes returns the appointment length in minutes
func (a *Appointment) DurationMinutes() int {
	return int(a.EndTime.Sub(a.StartTime) / time.Minute)
}

// BlockedUntil returns the end of the time the groomer is unavailable
func (a *Appointment) BlockedUntil() time.Time {
	return a.EndTime.Add(time.Duration(a.BufferMinutes) * time.Minute)
}

// PetCount returns the number of distinct pets in the appointment
func (a *Appointment) PetCount() int {
	seen := make(map[int64]struct{}, len(a.Pets))
	for _, p := range a.Pets {
		seen[p.PetID] = struct{}{}
	}
	return len(seen)
}

// StaffAppointmentsFilter selects appointments of one groomer in a time range
type StaffAppointmentsFilter struct {
	GroomerID        int64
	From             time.Time // inclusive
	To               time.Time // exclusive
	IncludeCancelled bool
}
