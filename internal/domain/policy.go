package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidPolicies is returned when booking policies hold impossible values
var ErrInvalidPolicies = errors.New("domain: invalid booking policies")

var hundred = decimal.NewFromInt(100)

// ConfirmationMode decides how a booking request is disposed
type ConfirmationMode string

const (
	ModeAutoConfirm ConfirmationMode = "auto_confirm"
	ModeRequestOnly ConfirmationMode = "request_only"
	ModeBlocked     ConfirmationMode = "blocked"
)

// IsValid returns true for known modes
func (m ConfirmationMode) IsValid() bool {
	switch m {
	case ModeAutoConfirm, ModeRequestOnly, ModeBlocked:
		return true
	}
	return false
}

// BookingPolicies is the organization-wide booking policy.
// Percentages are in the 0-100 range.
type BookingPolicies struct {
	OrganizationID int64
	Timezone       string // IANA name, e.g. "America/Chicago"

	NewClientMode      ConfirmationMode
	ExistingClientMode ConfirmationMode

	DepositRequired   bool
	DepositPercentage decimal.Decimal
	DepositMinimum    decimal.Decimal

	NoShowFeePercentage           decimal.Decimal
	CancellationWindowHours       int
	LateCancellationFeePercentage decimal.Decimal

	MaxPetsPerAppointment  int // 0 = unlimited
	MinAdvanceBookingHours int
	MaxAdvanceBookingDays  int // 0 = unlimited

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultBookingPolicies returns the policies used when an organization has none stored
func DefaultBookingPolicies(organizationID int64) *BookingPolicies {
	return &BookingPolicies{
		OrganizationID:                organizationID,
		Timezone:                      DefaultTimezone,
		NewClientMode:                 ModeAutoConfirm,
		ExistingClientMode:            ModeAutoConfirm,
		DepositRequired:               false,
		DepositPercentage:             decimal.Zero,
		DepositMinimum:                decimal.Zero,
		NoShowFeePercentage:           decimal.Zero,
		CancellationWindowHours:       DefaultCancellationWindowHours,
		LateCancellationFeePercentage: decimal.Zero,
		MaxPetsPerAppointment:         DefaultMaxPetsPerAppointment,
		MinAdvanceBookingHours:        DefaultMinAdvanceBookingHours,
		MaxAdvanceBookingDays:         DefaultMaxAdvanceBookingDays,
	}
}

// ModeFor selects the confirmation mode for a new or an existing client
func (p *BookingPolicies) ModeFor(isNewClient bool) ConfirmationMode {
	if isNewClient {
		return p.NewClientMode
	}
	return p.ExistingClientMode
}

// IsLateCancellation returns true if cancelAt is less than cancellationWindowHours before start
func (p *BookingPolicies) IsLateCancellation(start, cancelAt time.Time) bool {
	window := time.Duration(p.CancellationWindowHours) * time.Hour
	return start.Sub(cancelAt) < window
}

// HasMaxAdvanceLimit returns true if bookings are limited in how far ahead they can be made
func (p *BookingPolicies) HasMaxAdvanceLimit() bool {
	return p.MaxAdvanceBookingDays > 0
}

// HasPetLimit returns true if the number of pets per appointment is limited
func (p *BookingPolicies) HasPetLimit() bool {
	return p.MaxPetsPerAppointment > 0
}

// Location resolves the organization timezone
func (p *BookingPolicies) Location() (*time.Location, error) {
	tz := p.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("domain: unknown timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Validate checks modes, percentage ranges, limits and the timezone
func (p *BookingPolicies) Validate() error {
	if !p.NewClientMode.IsValid() {
		return fmt.Errorf("%w: unknown newClientMode %q", ErrInvalidPolicies, p.NewClientMode)
	}
	if !p.ExistingClientMode.IsValid() {
		return fmt.Errorf("%w: unknown existingClientMode %q", ErrInvalidPolicies, p.ExistingClientMode)
	}

	percentages := []struct {
		name  string
		value decimal.Decimal
	}{
		{"depositPercentage", p.DepositPercentage},
		{"noShowFeePercentage", p.NoShowFeePercentage},
		{"lateCancellationFeePercentage", p.LateCancellationFeePercentage},
	}
	for _, pct := range percentages {
		if pct.value.IsNegative() || pct.value.GreaterThan(hundred) {
			return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidPolicies, pct.name)
		}
	}
	if p.DepositMinimum.IsNegative() {
		return fmt.Errorf("%w: depositMinimum must not be negative", ErrInvalidPolicies)
	}

	if p.CancellationWindowHours < 0 || p.CancellationWindowHours > MaxCancellationWindowHours {
		return fmt.Errorf("%w: cancellationWindowHours must be between 0 and %d", ErrInvalidPolicies, MaxCancellationWindowHours)
	}
	if p.MaxPetsPerAppointment < 0 || p.MaxPetsPerAppointment > MaxPetsPerAppointment {
		return fmt.Errorf("%w: maxPetsPerAppointment must be between 0 and %d", ErrInvalidPolicies, MaxPetsPerAppointment)
	}
	if p.MinAdvanceBookingHours < 0 || p.MinAdvanceBookingHours > MaxMinAdvanceBookingHours {
		return fmt.Errorf("%w: minAdvanceBookingHours must be between 0 and %d", ErrInvalidPolicies, MaxMinAdvanceBookingHours)
	}
	if p.MaxAdvanceBookingDays < 0 || p.MaxAdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: maxAdvanceBookingDays must be between 0 and %d", ErrInvalidPolicies, MaxAdvanceBookingDays)
	}
	if p.HasMaxAdvanceLimit() && p.MaxAdvanceBookingDays*24 < p.MinAdvanceBookingHours {
		return fmt.Errorf("%w: booking window is empty", ErrInvalidPolicies)
	}

	if _, err := p.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicies, err)
	}

	return nil
}
