package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/policy"
	staffRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/staff"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakePolicies struct {
	policies *domain.BookingPolicies
	err      error
}

func (f *fakePolicies) GetByOrganization(_ context.Context, _ int64) (*domain.BookingPolicies, error) {
	return f.policies, f.err
}

type fakeStaff struct {
	availability *domain.StaffAvailability
	err          error
	timeOffFrom  time.Time
}

func (f *fakeStaff) GetAvailability(_ context.Context, _ int64) (*domain.StaffAvailability, error) {
	return f.availability, f.err
}

func (f *fakeStaff) GetApprovedTimeOff(_ context.Context, _ int64, from, _ time.Time) ([]domain.TimeOffRequest, error) {
	f.timeOffFrom = from
	return nil, nil
}

type fakeAppointments struct {
	filter domain.StaffAppointmentsFilter
	count  int
}

func (f *fakeAppointments) GetByStaffInRange(_ context.Context, filter domain.StaffAppointmentsFilter) ([]domain.Appointment, error) {
	f.filter = filter
	return []domain.Appointment{}, nil
}

func (f *fakeAppointments) CountByClient(_ context.Context, _, _ int64) (int, error) {
	return f.count, nil
}

type fakeCatalog struct {
	services []domain.Service
}

func (f *fakeCatalog) GetServicesByIDs(_ context.Context, _ int64, ids []int64) ([]domain.Service, error) {
	result := make([]domain.Service, 0)
	for _, s := range f.services {
		for _, id := range ids {
			if s.ID == id {
				result = append(result, s)
			}
		}
	}
	return result, nil
}

type fakePets struct {
	pets []domain.Pet
}

func (f *fakePets) GetByIDs(_ context.Context, clientID int64, ids []int64) ([]domain.Pet, error) {
	result := make([]domain.Pet, 0)
	for _, p := range f.pets {
		if p.ClientID != clientID {
			continue
		}
		for _, id := range ids {
			if p.ID == id {
				result = append(result, p)
			}
		}
	}
	return result, nil
}

type fixture struct {
	policies     *fakePolicies
	staff        *fakeStaff
	appointments *fakeAppointments
	loader       *Loader
}

func newFixture() *fixture {
	f := &fixture{
		policies: &fakePolicies{err: policyRepo.ErrPoliciesNotFound},
		staff: &fakeStaff{availability: &domain.StaffAvailability{
			StaffID: 3, OrganizationID: 1, MaxAppointmentsPerDay: 4,
			WeeklySchedule: domain.NormalizeWeeklySchedule(nil),
		}},
		appointments: &fakeAppointments{},
	}
	catalog := &fakeCatalog{services: []domain.Service{
		{ID: 10, OrganizationID: 1, BaseDuration: 45, BasePrice: decimal.NewFromInt(35), IsActive: true},
	}}
	pets := &fakePets{pets: []domain.Pet{
		{ID: 100, ClientID: 2, WeightRange: domain.WeightXLarge, CoatType: domain.CoatDouble},
		{ID: 200, ClientID: 99},
	}}
	f.loader = NewLoader(f.policies, f.staff, f.appointments, catalog, pets, nopLogger{})
	return f
}

func TestLoader_PoliciesDefaults(t *testing.T) {
	f := newFixture()

	p, loc, err := f.loader.Policies(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeAutoConfirm, p.NewClientMode)
	assert.Equal(t, domain.DefaultMinAdvanceBookingHours, p.MinAdvanceBookingHours)
	assert.Equal(t, time.UTC, loc)

	f.policies.err = errors.New("connection refused")
	_, _, err = f.loader.Policies(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)

	f.policies.err = nil
	f.policies.policies = &domain.BookingPolicies{OrganizationID: 1, Timezone: "Mars/Olympus"}
	_, _, err = f.loader.Policies(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestLoader_Schedule(t *testing.T) {
	f := newFixture()
	date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	s, err := f.loader.Schedule(context.Background(), 1, 3, date, time.UTC)
	require.NoError(t, err)
	require.NotNil(t, s.Availability)

	margin := time.Duration(domain.MaxBufferMinutes) * time.Minute
	assert.Equal(t, date.Add(-margin), f.appointments.filter.From)
	assert.Equal(t, date.AddDate(0, 0, 1).Add(margin), f.appointments.filter.To)
	assert.False(t, f.appointments.filter.IncludeCancelled)
	assert.Equal(t, date, f.staff.timeOffFrom)

	// Сотрудник другой организации
	s, err = f.loader.Schedule(context.Background(), 7, 3, date, time.UTC)
	require.NoError(t, err)
	assert.Nil(t, s.Availability)

	f.staff.err = staffRepo.ErrAvailabilityNotFound
	s, err = f.loader.Schedule(context.Background(), 1, 3, date, time.UTC)
	require.NoError(t, err)
	assert.Nil(t, s.Availability)
}

func TestLoader_Pets(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	pets, err := f.loader.Pets(ctx, 1, 2, []PetRequest{{PetID: 100, Services: []ServiceRequest{{ServiceID: 10, AddonIDs: []int64{5}}}}})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, domain.WeightXLarge, pets[0].Pet.WeightRange)
	require.Len(t, pets[0].Selections, 1)
	assert.Equal(t, int64(10), pets[0].Selections[0].Service.ID)
	assert.Equal(t, []int64{5}, pets[0].Selections[0].AddonIDs)

	_, err = f.loader.Pets(ctx, 1, 2, []PetRequest{{PetID: 200, Services: []ServiceRequest{{ServiceID: 10}}}})
	assert.ErrorIs(t, err, ErrPetNotFound)

	_, err = f.loader.Pets(ctx, 1, 2, []PetRequest{{PetID: 100, Services: []ServiceRequest{{ServiceID: 11}}}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestLoader_Load(t *testing.T) {
	f := newFixture()
	f.appointments.count = 3
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

	in, err := f.loader.Load(context.Background(), &Request{
		OrganizationID: 1,
		ClientID:       2,
		StaffID:        3,
		Start:          &start,
		Now:            now,
		Pets:           []PetRequest{{PetID: 100, Services: []ServiceRequest{{ServiceID: 10}}}},
	})
	require.NoError(t, err)

	assert.False(t, in.IsNewClient)
	assert.Equal(t, now, in.Now)
	assert.Equal(t, start, *in.Start)
	assert.Equal(t, start.Day(), in.Date.Day())
	assert.NotNil(t, in.Availability)
	assert.Len(t, in.Pets, 1)
}
