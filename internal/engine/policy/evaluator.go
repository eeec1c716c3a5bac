// Package policy applies an organization's booking policy to prospective
// and existing appointments. It never touches storage.
package policy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
)

var hundred = decimal.NewFromInt(100)

// Request describes the booking being evaluated
type Request struct {
	IsNewClient bool
	Start       time.Time
	TotalPrice  decimal.Decimal
	PetCount    int
}

// Result is how the booking should be disposed
type Result struct {
	Mode          domain.ConfirmationMode
	Status        domain.AppointmentStatus
	DepositAmount decimal.Decimal // zero when no deposit is required
}

// Evaluator is stateless
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate checks the booking window, the pet count and the confirmation mode,
// then computes the deposit.
func (e *Evaluator) Evaluate(p *domain.BookingPolicies, req Request, now time.Time) (*Result, error) {
	if err := e.CheckBookingWindow(p, req.Start, now); err != nil {
		return nil, err
	}

	if p.HasPetLimit() && req.PetCount > p.MaxPetsPerAppointment {
		return nil, violation(ReasonTooManyPets, "at most %d pets per appointment, got %d",
			p.MaxPetsPerAppointment, req.PetCount)
	}

	mode := p.ModeFor(req.IsNewClient)
	var status domain.AppointmentStatus
	switch mode {
	case domain.ModeAutoConfirm:
		status = domain.StatusConfirmed
	case domain.ModeRequestOnly:
		status = domain.StatusRequested
	default:
		if req.IsNewClient {
			return nil, violation(ReasonBlocked, "online booking is closed for new clients")
		}
		return nil, violation(ReasonBlocked, "online booking is closed")
	}

	return &Result{
		Mode:          mode,
		Status:        status,
		DepositAmount: e.Deposit(p, req.TotalPrice),
	}, nil
}

// CheckBookingWindow rejects starts earlier than now+minAdvanceBookingHours
// or later than now+maxAdvanceBookingDays. Both bounds are inclusive.
func (e *Evaluator) CheckBookingWindow(p *domain.BookingPolicies, start, now time.Time) error {
	earliest := now.Add(time.Duration(p.MinAdvanceBookingHours) * time.Hour)
	if start.Before(earliest) {
		return violation(ReasonTooSoon, "bookings must be made at least %d hours in advance", p.MinAdvanceBookingHours)
	}

	if p.HasMaxAdvanceLimit() {
		latest := now.Add(time.Duration(p.MaxAdvanceBookingDays) * 24 * time.Hour)
		if start.After(latest) {
			return violation(ReasonTooFar, "bookings can be made at most %d days in advance", p.MaxAdvanceBookingDays)
		}
	}

	return nil
}

// Deposit is max(depositMinimum, totalPrice*depositPercentage/100) when a deposit is required
func (e *Evaluator) Deposit(p *domain.BookingPolicies, totalPrice decimal.Decimal) decimal.Decimal {
	if !p.DepositRequired {
		return decimal.Zero
	}
	byPercent := percentOf(totalPrice, p.DepositPercentage)
	return decimal.Max(p.DepositMinimum, byPercent).Round(pricing.MoneyPlaces)
}

// CancellationFee is charged when cancelAt is less than cancellationWindowHours before the start
func (e *Evaluator) CancellationFee(p *domain.BookingPolicies, a *domain.Appointment, cancelAt time.Time) decimal.Decimal {
	if !p.IsLateCancellation(a.StartTime, cancelAt) {
		return decimal.Zero
	}
	return percentOf(a.TotalAmount, p.LateCancellationFeePercentage).Round(pricing.MoneyPlaces)
}

// NoShowFee does not depend on timing
func (e *Evaluator) NoShowFee(p *domain.BookingPolicies, a *domain.Appointment) decimal.Decimal {
	return percentOf(a.TotalAmount, p.NoShowFeePercentage).Round(pricing.MoneyPlaces)
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}
