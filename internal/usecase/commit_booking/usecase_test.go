package commit_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/availability"
	"github.com/m04kA/SMC-GroomingService/internal/engine/booking"
	"github.com/m04kA/SMC-GroomingService/internal/engine/policy"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
	appointmentRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-GroomingService/internal/service/snapshot"
	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
	attempts []int
}

func (m *recordingMetrics) ObserveBooking(_, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) ObserveCommitAttempts(_ string, attempts int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, attempts)
}

// memoryStore проверяет пересечения так же, как ограничение appointments_no_overlap
type memoryStore struct {
	mu           sync.Mutex
	nextID       int64
	appointments []domain.Appointment
	events       []domain.OutboxEvent
}

func (s *memoryStore) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.appointments {
		if !existing.IsActive() || *existing.GroomerID != *a.GroomerID {
			continue
		}
		if a.StartTime.Before(existing.BlockedUntil()) && existing.StartTime.Before(a.BlockedUntil()) {
			return nil, fmt.Errorf("%w: Create - insert appointment: exclusion violation", appointmentRepo.ErrOverlap)
		}
	}

	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = time.Now()
	s.appointments = append(s.appointments, *a)
	return a, nil
}

func (s *memoryStore) Insert(_ context.Context, e *domain.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *e)
	return nil
}

func (s *memoryStore) list() []domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Appointment(nil), s.appointments...)
}

// fakeLoader собирает QuoteInput из статичного каталога и записей memoryStore
type fakeLoader struct {
	store        *memoryStore
	policies     *domain.BookingPolicies
	availability *domain.StaffAvailability
	pet          domain.Pet
	service      *domain.Service

	// barrier задерживает Load, пока все участники гонки не прочитают снимок
	barrier *sync.WaitGroup
}

func (f *fakeLoader) Load(_ context.Context, req *snapshot.Request) (*booking.QuoteInput, error) {
	appointments := f.store.list()
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}

	pets := make([]booking.PetSelection, 0, len(req.Pets))
	for _, p := range req.Pets {
		selections := make([]pricing.Selection, 0, len(p.Services))
		for _, s := range p.Services {
			selections = append(selections, pricing.Selection{Service: f.service, AddonIDs: s.AddonIDs})
		}
		pets = append(pets, booking.PetSelection{Pet: f.pet, Selections: selections})
	}

	return &booking.QuoteInput{
		Now:          req.Now,
		Location:     time.UTC,
		Policies:     f.policies,
		IsNewClient:  true,
		StaffID:      req.StaffID,
		Date:         *req.Start,
		Start:        req.Start,
		Pets:         pets,
		Availability: f.availability,
		Appointments: appointments,
	}, nil
}

// flakyTx возвращает ошибку сериализации failures раз, затем выполняет fn
type flakyTx struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (t *flakyTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	fail := t.failures > 0
	if fail {
		t.failures--
	}
	t.mu.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}
	if fail {
		return fmt.Errorf("commit: %w", appointmentRepo.ErrSerialization)
	}
	return nil
}

var (
	monday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
)

func at(hhmm string) time.Time {
	t, err := types.TimeString(hhmm).On(monday, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	uc      *UseCase
	store   *memoryStore
	loader  *fakeLoader
	tx      *flakyTx
	metrics *recordingMetrics
	engine  *booking.Engine
}

func newFixture() *fixture {
	policies := domain.DefaultBookingPolicies(1)
	policies.DepositRequired = true
	policies.DepositPercentage = decimal.NewFromInt(25)
	policies.DepositMinimum = decimal.NewFromInt(15)

	store := &memoryStore{}
	loader := &fakeLoader{
		store:    store,
		policies: policies,
		availability: &domain.StaffAvailability{
			StaffID: 3, OrganizationID: 1, MaxAppointmentsPerDay: 6,
			BufferMinutesBetweenAppointments: 15,
			WeeklySchedule: domain.NormalizeWeeklySchedule([]domain.DaySchedule{{
				DayOfWeek: time.Monday, IsWorkingDay: true, StartTime: "08:00", EndTime: "16:00",
				BreakStart: ptr.Ptr(types.TimeString("12:00")), BreakEnd: ptr.Ptr(types.TimeString("12:30")),
			}}),
		},
		pet: domain.Pet{ID: 100, ClientID: 2, WeightRange: domain.WeightLarge, CoatType: domain.CoatLong},
		service: &domain.Service{
			ID: 1, Name: "Full Groom", BaseDuration: 90, BasePrice: decimal.NewFromInt(65), IsActive: true,
			Modifiers: []domain.ServiceModifier{
				{ID: 10, Name: "Large Dog", DurationDelta: 30, PriceDelta: decimal.NewFromInt(25),
					Condition: &domain.ModifierCondition{WeightRanges: []domain.WeightRange{domain.WeightLarge}}},
				{ID: 11, Name: "Long Coat", DurationDelta: 15, PriceDelta: decimal.NewFromInt(10),
					Condition: &domain.ModifierCondition{CoatTypes: []domain.CoatType{domain.CoatLong}}},
			},
		},
	}

	engine := booking.NewEngine(pricing.NewResolver(), availability.NewCalculator(), policy.NewEvaluator())
	tx := &flakyTx{}
	m := &recordingMetrics{}

	uc := NewUseCase(loader, engine, store, store, tx, m, 3, nopLogger{})
	uc.timeProvider = fixedTime{now: now}

	return &fixture{uc: uc, store: store, loader: loader, tx: tx, metrics: m, engine: engine}
}

func request(start time.Time) *Request {
	return &Request{
		UserID:         2,
		OrganizationID: 1,
		StaffID:        3,
		StartTime:      start,
		Pets:           []PetRequest{{PetID: 100, Services: []ServiceRequest{{ServiceID: 1}}}},
	}
}

func TestUseCase_QuoteThenCommitRoundTrip(t *testing.T) {
	f := newFixture()
	start := at("09:00")

	// Квота на тех же данных до фиксации
	in, err := f.loader.Load(context.Background(), &snapshot.Request{
		OrganizationID: 1, ClientID: 2, StaffID: 3, Start: &start, Now: now,
		Pets: []snapshot.PetRequest{{PetID: 100, Services: []snapshot.ServiceRequest{{ServiceID: 1}}}},
	})
	require.NoError(t, err)
	quote, err := f.engine.Quote(*in)
	require.NoError(t, err)
	require.True(t, quote.Bookable())

	resp, err := f.uc.Execute(context.Background(), request(start))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, *quote.End, resp.EndTime)
	assert.Equal(t, quote.TotalDuration, resp.TotalDuration)
	assert.Equal(t, 135, resp.TotalDuration)
	assert.True(t, quote.TotalPrice.Equal(resp.TotalAmount))
	assert.True(t, decimal.NewFromInt(100).Equal(resp.TotalAmount))
	assert.True(t, decimal.NewFromInt(25).Equal(resp.DepositAmount))

	require.Len(t, resp.Pets, 1)
	require.Len(t, resp.Pets[0].Services, 1)
	booked := resp.Pets[0].Services[0]
	quoted := quote.Pets[0].Services[0]
	assert.Equal(t, quoted.FinalDuration, booked.FinalDuration)
	assert.True(t, quoted.FinalPrice.Equal(booked.FinalPrice))
	assert.Equal(t, []int64{10, 11}, booked.AppliedModifierIDs)

	stored := f.store.list()
	require.Len(t, stored, 1)
	assert.Equal(t, 15, stored[0].BufferMinutes)
	assert.Equal(t, at("11:30"), stored[0].BlockedUntil())

	require.Len(t, f.store.events, 1)
	assert.Equal(t, domain.EventAppointmentBooked, f.store.events[0].EventType)
	assert.Equal(t, "1", f.store.events[0].AggregateID)

	assert.Equal(t, []string{"ok"}, f.metrics.outcomes)
	assert.Equal(t, []int{1}, f.metrics.attempts)
}

func TestUseCase_ConcurrentCommitsForOverlappingSlots(t *testing.T) {
	f := newFixture()
	f.loader.barrier = &sync.WaitGroup{}
	f.loader.barrier.Add(2)

	// Оба запроса видят пустое расписание, пересечение ловит только хранилище
	starts := []time.Time{at("09:00"), at("09:30")}
	errs := make([]error, len(starts))

	var wg sync.WaitGroup
	for i, start := range starts {
		wg.Add(1)
		go func(i int, start time.Time) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), request(start))
		}(i, start)
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, f.store.list(), 1)
	assert.Len(t, f.store.events, 1)
}

func TestUseCase_SequentialCommitSeesTakenSlot(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request(at("09:00")))
	require.NoError(t, err)

	// 11:15 попадает в буфер предыдущей записи [09:00, 11:30)
	_, err = f.uc.Execute(context.Background(), request(at("11:15")))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Следующий свободный старт после буфера и перерыва
	_, err = f.uc.Execute(context.Background(), request(at("12:30")))
	assert.NoError(t, err)
}

func TestUseCase_RetriesSerializationFailures(t *testing.T) {
	f := newFixture()
	f.tx.failures = 1

	// Первая попытка откатывается, поэтому память хранилища очищаем вручную
	f.uc.appointmentRepo = &rollbackOnce{store: f.store}

	resp, err := f.uc.Execute(context.Background(), request(at("09:00")))
	require.NoError(t, err)
	assert.Equal(t, 2, f.tx.calls)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, []int{2}, f.metrics.attempts)
}

func TestUseCase_SerializationFailuresExhausted(t *testing.T) {
	f := newFixture()
	f.tx.failures = 10
	f.uc.appointmentRepo = &rollbackOnce{store: f.store, always: true}

	_, err := f.uc.Execute(context.Background(), request(at("09:00")))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 3, f.tx.calls)
	assert.Equal(t, []string{"slot_conflict"}, f.metrics.outcomes)
	assert.Equal(t, []int{3}, f.metrics.attempts)
}

// rollbackOnce отбрасывает запись, сохраненную в откатываемой попытке
type rollbackOnce struct {
	store  *memoryStore
	always bool
	done   bool
}

func (r *rollbackOnce) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if r.done && !r.always {
		return r.store.Create(ctx, a)
	}
	r.done = true
	created := *a
	created.ID = 99
	return &created, nil
}

func TestUseCase_PolicyViolation(t *testing.T) {
	f := newFixture()
	f.loader.policies.NewClientMode = domain.ModeBlocked

	_, err := f.uc.Execute(context.Background(), request(at("09:00")))
	require.ErrorIs(t, err, ErrPolicyViolation)

	v, ok := policy.AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, policy.ReasonBlocked, v.Reason)
	assert.Empty(t, f.store.list())
	assert.Equal(t, []string{"policy_violation"}, f.metrics.outcomes)
}

func TestUseCase_AdvanceBookingBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{name: "exactly min advance", start: now.Add(24 * time.Hour)},
		{name: "one minute too soon", start: now.Add(24*time.Hour - time.Minute), wantErr: ErrPolicyViolation},
		{name: "exactly max advance", start: now.AddDate(0, 0, 7)},
		{name: "one day too far", start: now.AddDate(0, 0, 8), wantErr: ErrPolicyViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.loader.policies.MinAdvanceBookingHours = 24
			f.loader.policies.MaxAdvanceBookingDays = 7
			// Расписание на каждый день, чтобы проверялась только политика
			entries := make([]domain.DaySchedule, 0, 7)
			for d := time.Sunday; d <= time.Saturday; d++ {
				entries = append(entries, domain.DaySchedule{DayOfWeek: d, IsWorkingDay: true, StartTime: "00:00", EndTime: "23:59"})
			}
			f.loader.availability.WeeklySchedule = domain.NormalizeWeeklySchedule(entries)
			f.loader.service.Modifiers = nil
			f.loader.service.BaseDuration = 30

			_, err := f.uc.Execute(context.Background(), request(tt.start))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUseCase_InputErrors(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 2, OrganizationID: 1, StaffID: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	req := request(at("09:00"))
	req.Pets[0].Services[0].AddonIDs = []int64{404}
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownModifier)

	f.loader.availability = nil
	_, err = f.uc.Execute(context.Background(), request(at("09:00")))
	assert.ErrorIs(t, err, ErrStaffNotFound)

	assert.Empty(t, f.store.list())
}
