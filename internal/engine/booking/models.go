package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/policy"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
)

// PetSelection is one pet with the services chosen for it
type PetSelection struct {
	Pet        domain.Pet
	Selections []pricing.Selection
}

// QuoteInput is a snapshot of everything a quote depends on
type QuoteInput struct {
	Now         time.Time
	Location    *time.Location
	Policies    *domain.BookingPolicies
	IsNewClient bool

	StaffID int64
	Date    time.Time  // day to list slots for, ignored when Start is set
	Start   *time.Time // requested start, optional

	Pets []PetSelection

	Availability *domain.StaffAvailability
	TimeOff      []domain.TimeOffRequest
	Appointments []domain.Appointment
}

// PetQuote is the resolution for one pet
type PetQuote struct {
	PetID         int64
	Services      []pricing.ServiceResult
	TotalDuration int
	TotalPrice    decimal.Decimal
}

// Quote is the outcome of running the pricing, availability and policy pipeline
type Quote struct {
	Pets          []PetQuote
	TotalDuration int // minutes
	TotalPrice    decimal.Decimal

	// AvailableSlots are free starts on the day that also satisfy the booking window
	AvailableSlots []time.Time

	Start         *time.Time
	End           *time.Time
	SlotAvailable bool

	// Exactly one of Policy and Violation is set when Start is given
	Policy    *policy.Result
	Violation *policy.PolicyViolationError
}

// Bookable returns true if the requested start can be committed as quoted
func (q *Quote) Bookable() bool {
	return q.Start != nil && q.SlotAvailable && q.Policy != nil
}

// Appointment builds the appointment to persist from a bookable quote
func (q *Quote) Appointment(organizationID, clientID, staffID int64, bufferMinutes int) *domain.Appointment {
	pets := make([]domain.AppointmentPet, len(q.Pets))
	for i, p := range q.Pets {
		services := make([]domain.AppointmentService, len(p.Services))
		for j, s := range p.Services {
			services[j] = domain.AppointmentService{
				ServiceID:          s.ServiceID,
				AppliedModifierIDs: s.AppliedModifierIDs,
				FinalDuration:      s.FinalDuration,
				FinalPrice:         s.FinalPrice,
			}
		}
		pets[i] = domain.AppointmentPet{PetID: p.PetID, Services: services}
	}

	groomer := staffID
	return &domain.Appointment{
		OrganizationID: organizationID,
		ClientID:       clientID,
		GroomerID:      &groomer,
		StartTime:      *q.Start,
		EndTime:        *q.End,
		Status:         q.Policy.Status,
		Pets:           pets,
		DepositAmount:  q.Policy.DepositAmount,
		DepositPaid:    false,
		TotalAmount:    q.TotalPrice,
		BufferMinutes:  bufferMinutes,
	}
}
