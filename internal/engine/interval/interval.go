// Package interval implements arithmetic over half-open time spans [Start, End).
package interval

import (
	"sort"
	"time"
)

// Interval is the half-open span [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds an interval from a start and a duration
func New(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// Duration returns the length of the interval, never negative
func (iv Interval) Duration() time.Duration {
	if !iv.End.After(iv.Start) {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// IsEmpty returns true for zero-length and inverted intervals
func (iv Interval) IsEmpty() bool {
	return !iv.End.After(iv.Start)
}

// Overlaps reports whether two intervals share at least one instant.
// Touching intervals ([a,b) and [b,c)) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.IsEmpty() || other.IsEmpty() {
		return false
	}
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether inner lies entirely inside iv
func (iv Interval) Contains(inner Interval) bool {
	return !inner.Start.Before(iv.Start) && !inner.End.After(iv.End)
}

// Fits reports whether a non-empty inner interval lies entirely inside outer
func Fits(inner, outer Interval) bool {
	if inner.IsEmpty() {
		return false
	}
	return outer.Contains(inner)
}

// Expand grows both ends of the interval by buffer. A negative buffer is treated as zero.
func Expand(iv Interval, buffer time.Duration) Interval {
	if buffer <= 0 {
		return iv
	}
	return Interval{Start: iv.Start.Add(-buffer), End: iv.End.Add(buffer)}
}

// Merge sorts intervals and coalesces overlapping and touching ones.
// Empty intervals are dropped. The input slice is not modified.
func Merge(intervals []Interval) []Interval {
	items := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			items = append(items, iv)
		}
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Start.Equal(items[j].Start) {
			return items[i].End.Before(items[j].End)
		}
		return items[i].Start.Before(items[j].Start)
	})

	merged := []Interval{items[0]}
	for _, iv := range items[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}

// Subtract removes busy intervals from a free window and returns the
// remaining non-empty pieces in chronological order.
func Subtract(free Interval, busy []Interval) []Interval {
	if free.IsEmpty() {
		return nil
	}

	result := []Interval{}
	cursor := free.Start
	for _, b := range Merge(busy) {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(free.End) {
			break
		}
		if b.Start.After(cursor) {
			result = append(result, Interval{Start: cursor, End: b.Start})
		}
		cursor = b.End
		if !cursor.Before(free.End) {
			return result
		}
	}

	if cursor.Before(free.End) {
		result = append(result, Interval{Start: cursor, End: free.End})
	}

	return result
}

// SubtractAll applies Subtract to every free window and concatenates the results
func SubtractAll(free []Interval, busy []Interval) []Interval {
	merged := Merge(busy)
	var result []Interval
	for _, f := range Merge(free) {
		result = append(result, Subtract(f, merged)...)
	}
	return result
}
