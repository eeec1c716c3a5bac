// Package availability computes bookable start times for a staff member on a day.
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/interval"
)

// Input is everything the calculator needs about one staff member and one day.
// Appointments may cover any dates; only those on Date are considered.
type Input struct {
	StaffID         int64
	Date            time.Time // only the calendar date is used
	Location        *time.Location
	DurationMinutes int
	Availability    *domain.StaffAvailability
	TimeOff         []domain.TimeOffRequest
	Appointments    []domain.Appointment
}

// Calculator is read-only and safe for concurrent use
type Calculator struct {
	granularity time.Duration
}

type Option func(*Calculator)

// WithGranularity sets the step between candidate start times
func WithGranularity(minutes int) Option {
	return func(c *Calculator) {
		if minutes > 0 {
			c.granularity = time.Duration(minutes) * time.Minute
		}
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{granularity: domain.DefaultSlotGranularityMinutes * time.Minute}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAvailableSlots returns chronological start times at which the requested
// duration fits into the staff member's free time on the date.
func (c *Calculator) ListAvailableSlots(in Input) ([]time.Time, error) {
	windows, err := c.FreeWindows(in)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(in.DurationMinutes) * time.Minute
	slots := make([]time.Time, 0)
	for _, w := range windows {
		for start := w.Start; !start.Add(duration).After(w.End); start = start.Add(c.granularity) {
			slots = append(slots, start)
		}
	}

	return slots, nil
}

// IsSlotFree reports whether [start, start+duration) fits a free window.
// Unlike ListAvailableSlots the start does not have to lie on the granularity grid.
func (c *Calculator) IsSlotFree(in Input, start time.Time) (bool, error) {
	windows, err := c.FreeWindows(in)
	if err != nil {
		return false, err
	}

	candidate := interval.New(start, time.Duration(in.DurationMinutes)*time.Minute)
	for _, w := range windows {
		if interval.Fits(candidate, w) {
			return true, nil
		}
	}
	return false, nil
}

// FreeWindows returns the working time left on the date after breaks and
// buffered appointments. It is empty on days off and once the daily cap is reached.
func (c *Calculator) FreeWindows(in Input) ([]interval.Interval, error) {
	if in.Availability == nil {
		return nil, fmt.Errorf("%w: staff id=%d", ErrStaffNotFound, in.StaffID)
	}
	if in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, in.DurationMinutes)
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	// 1. Отпуск или нерабочий день
	if onTimeOff(in.StaffID, in.TimeOff, date) {
		return nil, nil
	}
	day := in.Availability.WeeklySchedule.For(date.Weekday())
	if !day.IsWorkingDay {
		return nil, nil
	}

	// 2. Рабочее окно минус перерыв
	windows, err := workingWindows(day, date, loc)
	if err != nil {
		return nil, err
	}

	// 3. Существующие записи с буфером
	busy, count := busyOnDate(in.StaffID, in.Appointments, date, in.Availability.Buffer())
	windows = interval.SubtractAll(windows, busy)

	// 4. Дневной лимит записей
	if count >= in.Availability.MaxAppointmentsPerDay {
		return nil, nil
	}

	return windows, nil
}

func onTimeOff(staffID int64, requests []domain.TimeOffRequest, date time.Time) bool {
	for i := range requests {
		r := &requests[i]
		if r.StaffID == staffID && r.IsApproved() && r.CoversDate(date) {
			return true
		}
	}
	return false
}

func workingWindows(day domain.DaySchedule, date time.Time, loc *time.Location) ([]interval.Interval, error) {
	start, err := day.StartTime.On(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	end, err := day.EndTime.On(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	working := interval.Interval{Start: start, End: end}

	if !day.HasBreak() {
		if working.IsEmpty() {
			return nil, nil
		}
		return []interval.Interval{working}, nil
	}

	breakStart, err := day.BreakStart.On(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	breakEnd, err := day.BreakEnd.On(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return interval.Subtract(working, []interval.Interval{{Start: breakStart, End: breakEnd}}), nil
}

// busyOnDate returns buffered busy intervals of the staff member touching the date
// and the number of active appointments starting on it
func busyOnDate(staffID int64, appointments []domain.Appointment, date time.Time, buffer time.Duration) ([]interval.Interval, int) {
	dayWindow := interval.Interval{Start: date, End: date.AddDate(0, 0, 1)}

	busy := make([]interval.Interval, 0, len(appointments))
	count := 0
	for i := range appointments {
		a := &appointments[i]
		if !a.IsActive() || a.GroomerID == nil || *a.GroomerID != staffID {
			continue
		}

		expanded := interval.Expand(interval.Interval{Start: a.StartTime, End: a.EndTime}, buffer)
		if !expanded.Overlaps(dayWindow) {
			continue
		}
		busy = append(busy, expanded)

		if !a.StartTime.Before(dayWindow.Start) && a.StartTime.Before(dayWindow.End) {
			count++
		}
	}

	return interval.Merge(busy), count
}
