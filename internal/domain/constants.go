package domain

// Default configuration values
const (
	DefaultTimezone                = "UTC"
	DefaultCancellationWindowHours = 24
	DefaultMaxPetsPerAppointment   = 0 // 0 = unlimited
	DefaultMinAdvanceBookingHours  = 1
	DefaultMaxAdvanceBookingDays   = 0 // 0 = unlimited
	DefaultMaxAppointmentsPerDay   = 8
	DefaultSlotGranularityMinutes  = 15
	DefaultCommitAttempts          = 3
)

// Business validation constants
const (
	DaysPerWeek                = 7
	MinAppointmentsPerDay      = 1
	MaxAppointmentsPerDay      = 100
	MaxBufferMinutes           = 240
	MaxRequestedDuration       = 12 * 60 // minutes
	MaxCancellationWindowHours = 24 * 14
	MaxMinAdvanceBookingHours  = 24 * 30
	MaxAdvanceBookingDays      = 365
	MaxPetsPerAppointment      = 20
	AppointmentAggregate       = "appointment"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses that free the groomer's time
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ActiveStatuses statuses that occupy the groomer's time and count toward the daily cap
var ActiveStatuses = []AppointmentStatus{
	StatusRequested,
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
	StatusCompleted,
	StatusNoShow,
}
