package domain

import "time"

// AvailableSlot is a start time at which the requested duration fits
type AvailableSlot struct {
	StartTime       time.Time
	DurationMinutes int
}

// EndTime returns the end of the slot
func (s *AvailableSlot) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// SlotsFromStarts builds slots of the same duration from start times
func SlotsFromStarts(starts []time.Time, durationMinutes int) []AvailableSlot {
	slots := make([]AvailableSlot, len(starts))
	for i, s := range starts {
		slots[i] = AvailableSlot{StartTime: s, DurationMinutes: durationMinutes}
	}
	return slots
}
