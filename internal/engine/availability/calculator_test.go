package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/interval"
	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

const staffID int64 = 7

// monday 2025-06-02
var monday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func at(hhmm string) time.Time {
	t, err := types.TimeString(hhmm).On(monday, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func standardAvailability() *domain.StaffAvailability {
	entries := make([]domain.DaySchedule, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		entries = append(entries, domain.DaySchedule{
			DayOfWeek:    day,
			IsWorkingDay: day != time.Sunday,
			StartTime:    "08:00",
			EndTime:      "16:00",
			BreakStart:   ptr.Ptr(types.TimeString("12:00")),
			BreakEnd:     ptr.Ptr(types.TimeString("12:30")),
		})
	}
	return &domain.StaffAvailability{
		StaffID:                          staffID,
		WeeklySchedule:                   domain.NormalizeWeeklySchedule(entries),
		MaxAppointmentsPerDay:            6,
		BufferMinutesBetweenAppointments: 15,
	}
}

func appointment(from, to string, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		GroomerID: ptr.Ptr(staffID),
		StartTime: at(from),
		EndTime:   at(to),
		Status:    status,
	}
}

func TestListAvailableSlots_BufferAndBreak(t *testing.T) {
	in := Input{
		StaffID:         staffID,
		Date:            monday,
		DurationMinutes: 60,
		Availability:    standardAvailability(),
		Appointments:    []domain.Appointment{appointment("09:00", "10:30", domain.StatusConfirmed)},
	}

	slots, err := NewCalculator().ListAvailableSlots(in)
	require.NoError(t, err)

	want := []time.Time{at("10:45"), at("11:00")}
	for s := at("12:30"); !s.After(at("15:00")); s = s.Add(15 * time.Minute) {
		want = append(want, s)
	}
	assert.Equal(t, want, slots)

	buffered := interval.Interval{Start: at("08:45"), End: at("10:45")}
	lunch := interval.Interval{Start: at("12:00"), End: at("12:30")}
	working := interval.Interval{Start: at("08:00"), End: at("16:00")}
	for _, s := range slots {
		candidate := interval.New(s, time.Hour)
		assert.False(t, candidate.Overlaps(buffered), "slot %s hits buffered appointment", s)
		assert.False(t, candidate.Overlaps(lunch), "slot %s hits break", s)
		assert.True(t, interval.Fits(candidate, working))
	}
}

func TestListAvailableSlots_EmptyDays(t *testing.T) {
	avail := standardAvailability()

	t.Run("non working day", func(t *testing.T) {
		sunday := monday.AddDate(0, 0, -1)
		slots, err := NewCalculator().ListAvailableSlots(Input{
			StaffID: staffID, Date: sunday, DurationMinutes: 30, Availability: avail,
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("approved time off", func(t *testing.T) {
		slots, err := NewCalculator().ListAvailableSlots(Input{
			StaffID: staffID, Date: monday, DurationMinutes: 30, Availability: avail,
			TimeOff: []domain.TimeOffRequest{{
				StaffID:   staffID,
				StartDate: monday.AddDate(0, 0, -2),
				EndDate:   monday,
				Status:    domain.TimeOffApproved,
			}},
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("pending and foreign time off ignored", func(t *testing.T) {
		slots, err := NewCalculator().ListAvailableSlots(Input{
			StaffID: staffID, Date: monday, DurationMinutes: 30, Availability: avail,
			TimeOff: []domain.TimeOffRequest{
				{StaffID: staffID, StartDate: monday, EndDate: monday, Status: domain.TimeOffPending},
				{StaffID: staffID, StartDate: monday, EndDate: monday, Status: domain.TimeOffRejected},
				{StaffID: staffID + 1, StartDate: monday, EndDate: monday, Status: domain.TimeOffApproved},
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, slots)
	})

	t.Run("daily cap reached", func(t *testing.T) {
		capped := standardAvailability()
		capped.MaxAppointmentsPerDay = 2
		slots, err := NewCalculator().ListAvailableSlots(Input{
			StaffID: staffID, Date: monday, DurationMinutes: 30, Availability: capped,
			Appointments: []domain.Appointment{
				appointment("08:00", "08:30", domain.StatusConfirmed),
				appointment("13:00", "13:30", domain.StatusRequested),
			},
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestListAvailableSlots_IgnoresCancelledAndOtherStaff(t *testing.T) {
	other := appointment("08:00", "16:00", domain.StatusConfirmed)
	other.GroomerID = ptr.Ptr(staffID + 1)

	slots, err := NewCalculator().ListAvailableSlots(Input{
		StaffID:         staffID,
		Date:            monday,
		DurationMinutes: 240,
		Availability:    standardAvailability(),
		Appointments: []domain.Appointment{
			appointment("08:00", "12:00", domain.StatusCancelled),
			other,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{at("08:00")}, slots)
}

func TestListAvailableSlots_Errors(t *testing.T) {
	_, err := NewCalculator().ListAvailableSlots(Input{StaffID: staffID, Date: monday, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrStaffNotFound)

	_, err = NewCalculator().ListAvailableSlots(Input{
		StaffID: staffID, Date: monday, DurationMinutes: 0, Availability: standardAvailability(),
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestListAvailableSlots_Timezone(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)

	slots, err := NewCalculator().ListAvailableSlots(Input{
		StaffID:         staffID,
		Date:            monday,
		Location:        loc,
		DurationMinutes: 480,
		Availability: &domain.StaffAvailability{
			StaffID: staffID,
			WeeklySchedule: domain.NormalizeWeeklySchedule([]domain.DaySchedule{
				{DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "08:00", EndTime: "16:00"},
			}),
			MaxAppointmentsPerDay: 1,
		},
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2025, time.June, 2, 14, 0, 0, 0, time.UTC), slots[0].UTC())
}

func TestListAvailableSlots_Granularity(t *testing.T) {
	slots, err := NewCalculator(WithGranularity(30)).ListAvailableSlots(Input{
		StaffID:         staffID,
		Date:            monday,
		DurationMinutes: 60,
		Availability:    standardAvailability(),
		Appointments:    []domain.Appointment{appointment("08:00", "15:00", domain.StatusConfirmed)},
	})
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = NewCalculator(WithGranularity(30)).ListAvailableSlots(Input{
		StaffID:         staffID,
		Date:            monday,
		DurationMinutes: 60,
		Availability:    standardAvailability(),
		Appointments:    []domain.Appointment{appointment("08:00", "13:45", domain.StatusConfirmed)},
	})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{at("14:00"), at("14:30"), at("15:00")}, slots)
}

func TestIsSlotFree(t *testing.T) {
	in := Input{
		StaffID:         staffID,
		Date:            monday,
		DurationMinutes: 60,
		Availability:    standardAvailability(),
		Appointments:    []domain.Appointment{appointment("09:00", "10:30", domain.StatusConfirmed)},
	}
	calc := NewCalculator()

	tests := []struct {
		start string
		want  bool
	}{
		{start: "10:45", want: true},
		{start: "10:50", want: true},
		{start: "10:40", want: false},
		{start: "07:45", want: false},
		{start: "11:30", want: false},
		{start: "15:00", want: true},
		{start: "15:01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			ok, err := calc.IsSlotFree(in, at(tt.start))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
