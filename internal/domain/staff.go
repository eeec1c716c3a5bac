package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

var (
	// ErrInvalidSchedule is returned when a weekly schedule breaks its invariants
	ErrInvalidSchedule = errors.New("domain: invalid weekly schedule")
)

// DaySchedule is the working pattern of one weekday in wall-clock time.
// Times carry no timezone; they are read in the organization's timezone.
type DaySchedule struct {
	DayOfWeek    time.Weekday
	IsWorkingDay bool
	StartTime    types.TimeString
	EndTime      types.TimeString
	BreakStart   *types.TimeString
	BreakEnd     *types.TimeString
}

// HasBreak returns true if both break bounds are set
func (d *DaySchedule) HasBreak() bool {
	return d.BreakStart != nil && d.BreakEnd != nil && !d.BreakStart.IsZero() && !d.BreakEnd.IsZero()
}

// Validate checks time formats and ordering of a working day
func (d *DaySchedule) Validate() error {
	if d.DayOfWeek < time.Sunday || d.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: dayOfWeek %d out of range", ErrInvalidSchedule, d.DayOfWeek)
	}
	if !d.IsWorkingDay {
		return nil
	}
	if err := d.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %s startTime: %v", ErrInvalidSchedule, d.DayOfWeek, err)
	}
	if err := d.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: %s endTime: %v", ErrInvalidSchedule, d.DayOfWeek, err)
	}
	if !d.StartTime.IsBefore(d.EndTime) {
		return fmt.Errorf("%w: %s startTime must be before endTime", ErrInvalidSchedule, d.DayOfWeek)
	}
	if (d.BreakStart == nil) != (d.BreakEnd == nil) {
		return fmt.Errorf("%w: %s break needs both start and end", ErrInvalidSchedule, d.DayOfWeek)
	}
	if d.HasBreak() {
		if err := d.BreakStart.Validate(); err != nil {
			return fmt.Errorf("%w: %s breakStart: %v", ErrInvalidSchedule, d.DayOfWeek, err)
		}
		if err := d.BreakEnd.Validate(); err != nil {
			return fmt.Errorf("%w: %s breakEnd: %v", ErrInvalidSchedule, d.DayOfWeek, err)
		}
		if !d.BreakStart.IsBefore(*d.BreakEnd) {
			return fmt.Errorf("%w: %s breakStart must be before breakEnd", ErrInvalidSchedule, d.DayOfWeek)
		}
	}
	return nil
}

// WeeklySchedule has exactly one entry per weekday, indexed by time.Weekday
type WeeklySchedule [7]DaySchedule

// For returns the schedule of the given weekday
func (w WeeklySchedule) For(day time.Weekday) DaySchedule {
	return w[day]
}

// NewWeeklySchedule builds a schedule from exactly 7 entries with no duplicate weekdays.
// Used on the write path.
func NewWeeklySchedule(entries []DaySchedule) (WeeklySchedule, error) {
	var schedule WeeklySchedule
	if len(entries) != DaysPerWeek {
		return schedule, fmt.Errorf("%w: expected %d days, got %d", ErrInvalidSchedule, DaysPerWeek, len(entries))
	}

	var seen [7]bool
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return schedule, err
		}
		if seen[e.DayOfWeek] {
			return schedule, fmt.Errorf("%w: duplicate %s", ErrInvalidSchedule, e.DayOfWeek)
		}
		seen[e.DayOfWeek] = true
		schedule[e.DayOfWeek] = e
	}

	return schedule, nil
}

// NormalizeWeeklySchedule builds a complete schedule from stored rows.
// Missing weekdays become non-working, invalid rows are treated as non-working
// and a later row for the same weekday replaces an earlier one.
func NormalizeWeeklySchedule(entries []DaySchedule) WeeklySchedule {
	var schedule WeeklySchedule
	for day := time.Sunday; day <= time.Saturday; day++ {
		schedule[day] = DaySchedule{DayOfWeek: day}
	}

	for _, e := range entries {
		if e.DayOfWeek < time.Sunday || e.DayOfWeek > time.Saturday {
			continue
		}
		if e.Validate() != nil {
			schedule[e.DayOfWeek] = DaySchedule{DayOfWeek: e.DayOfWeek}
			continue
		}
		schedule[e.DayOfWeek] = e
	}

	return schedule
}

// StaffAvailability is the scheduling configuration of one staff member
type StaffAvailability struct {
	StaffID                          int64
	OrganizationID                   int64
	WeeklySchedule                   WeeklySchedule
	MaxAppointmentsPerDay            int
	BufferMinutesBetweenAppointments int
	UpdatedAt                        time.Time
}

// Buffer returns the buffer as a duration
func (s *StaffAvailability) Buffer() time.Duration {
	return time.Duration(s.BufferMinutesBetweenAppointments) * time.Minute
}

// TimeOffStatus is the review state of a time-off request
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

// TimeOffRequest blocks whole days for a staff member once approved
type TimeOffRequest struct {
	ID        int64
	StaffID   int64
	StartDate time.Time // date only, inclusive
	EndDate   time.Time // date only, inclusive
	Status    TimeOffStatus
	Reason    *string
}

// IsApproved returns true if the request removes availability
func (t *TimeOffRequest) IsApproved() bool {
	return t.Status == TimeOffApproved
}

// CoversDate returns true if the calendar date of day falls in [StartDate, EndDate]
func (t *TimeOffRequest) CoversDate(day time.Time) bool {
	d := dateKey(day)
	return dateKey(t.StartDate) <= d && d <= dateKey(t.EndDate)
}

// dateKey turns a calendar date into a comparable integer yyyymmdd
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
