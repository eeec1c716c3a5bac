package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

func workingDay(day time.Weekday) DaySchedule {
	return DaySchedule{DayOfWeek: day, IsWorkingDay: true, StartTime: "09:00", EndTime: "17:00"}
}

func fullWeek() []DaySchedule {
	entries := make([]DaySchedule, 0, DaysPerWeek)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if day == time.Sunday {
			entries = append(entries, DaySchedule{DayOfWeek: day})
			continue
		}
		entries = append(entries, workingDay(day))
	}
	return entries
}

func TestNewWeeklySchedule(t *testing.T) {
	schedule, err := NewWeeklySchedule(fullWeek())
	require.NoError(t, err)
	assert.False(t, schedule.For(time.Sunday).IsWorkingDay)
	assert.True(t, schedule.For(time.Wednesday).IsWorkingDay)

	_, err = NewWeeklySchedule(fullWeek()[:6])
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	dup := fullWeek()
	dup[0] = workingDay(time.Monday)
	_, err = NewWeeklySchedule(dup)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	bad := fullWeek()
	bad[1].EndTime = "08:00"
	_, err = NewWeeklySchedule(bad)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestDaySchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		day     DaySchedule
		wantErr bool
	}{
		{name: "non working day ignores times", day: DaySchedule{DayOfWeek: time.Sunday, StartTime: "bad"}},
		{name: "plain working day", day: workingDay(time.Monday)},
		{
			name: "with break",
			day: DaySchedule{DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "09:00", EndTime: "17:00",
				BreakStart: ptr.Ptr(types.TimeString("12:00")), BreakEnd: ptr.Ptr(types.TimeString("13:00"))},
		},
		{
			name: "half break",
			day: DaySchedule{DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "09:00", EndTime: "17:00",
				BreakStart: ptr.Ptr(types.TimeString("12:00"))},
			wantErr: true,
		},
		{
			name: "inverted break",
			day: DaySchedule{DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "09:00", EndTime: "17:00",
				BreakStart: ptr.Ptr(types.TimeString("13:00")), BreakEnd: ptr.Ptr(types.TimeString("12:00"))},
			wantErr: true,
		},
		{
			name:    "start equals end",
			day:     DaySchedule{DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "09:00", EndTime: "09:00"},
			wantErr: true,
		},
		{
			name:    "single digit end before start",
			day:     DaySchedule{DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "10:00", EndTime: "9:00"},
			wantErr: true,
		},
		{
			name:    "single digit start",
			day:     DaySchedule{DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "9:00", EndTime: "17:00"},
			wantErr: true,
		},
		{
			name: "break ordered by minutes",
			day: DaySchedule{DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "08:00", EndTime: "17:00",
				BreakStart: ptr.Ptr(types.TimeString("09:30")), BreakEnd: ptr.Ptr(types.TimeString("10:00"))},
		},
		{name: "weekday out of range", day: DaySchedule{DayOfWeek: 9}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.day.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNormalizeWeeklySchedule(t *testing.T) {
	invalid := workingDay(time.Tuesday)
	invalid.StartTime = "18:00"

	later := workingDay(time.Monday)
	later.StartTime = "10:00"

	schedule := NormalizeWeeklySchedule([]DaySchedule{workingDay(time.Monday), invalid, later})

	assert.Equal(t, types.TimeString("10:00"), schedule.For(time.Monday).StartTime)
	assert.False(t, schedule.For(time.Tuesday).IsWorkingDay)
	assert.False(t, schedule.For(time.Friday).IsWorkingDay)
	for day := time.Sunday; day <= time.Saturday; day++ {
		assert.Equal(t, day, schedule.For(day).DayOfWeek)
	}
}

func TestTimeOffRequest_CoversDate(t *testing.T) {
	req := TimeOffRequest{
		StartDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC),
		Status:    TimeOffApproved,
	}

	assert.True(t, req.IsApproved())
	assert.True(t, req.CoversDate(time.Date(2025, time.June, 2, 23, 0, 0, 0, time.UTC)))
	assert.True(t, req.CoversDate(time.Date(2025, time.June, 4, 8, 0, 0, 0, time.UTC)))
	assert.False(t, req.CoversDate(time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, req.CoversDate(time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC)))
}
