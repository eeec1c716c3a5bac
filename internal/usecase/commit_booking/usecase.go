package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/availability"
	"github.com/m04kA/SMC-GroomingService/internal/engine/booking"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
	appointmentRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-GroomingService/internal/service/snapshot"
)

const operation = "commit"

// UseCase use case для создания записи.
// Весь расчет повторяется на живых данных внутри SERIALIZABLE транзакции,
// пересечения отсекаются ограничением appointments_no_overlap.
type UseCase struct {
	loader          SnapshotLoader
	engine          QuoteEngine
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	metrics         Metrics
	maxAttempts     int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// maxAttempts ограничивает число повторов транзакции при ошибках сериализации.
func NewUseCase(
	loader SnapshotLoader,
	engine QuoteEngine,
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	metrics Metrics,
	maxAttempts int,
	logger Logger,
) *UseCase {
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultCommitAttempts
	}
	return &UseCase{
		loader:          loader,
		engine:          engine,
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		metrics:         metrics,
		maxAttempts:     maxAttempts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBooking: client=%d, organization=%d, staff=%d, start=%s, pets=%d",
		req.UserID, req.OrganizationID, req.StaffID, req.StartTime.Format(time.RFC3339), len(req.Pets))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		uc.metrics.ObserveBooking(operation, "invalid")
		return nil, err
	}

	var (
		created  *domain.Appointment
		duration int
		err      error
		attempt  int
	)

	// 2. Транзакция с ограниченным числом повторов при ошибках сериализации
	for attempt = 1; attempt <= uc.maxAttempts; attempt++ {
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			appointment, total, err := uc.commit(txCtx, req)
			if err != nil {
				return err
			}
			created, duration = appointment, total
			return nil
		})
		if err == nil || !appointmentRepo.IsSerializationFailure(err) {
			break
		}
		uc.logger.Warn("CommitBooking: serialization failure on attempt %d/%d for staff=%d: %v",
			attempt, uc.maxAttempts, req.StaffID, err)
	}
	if attempt > uc.maxAttempts {
		attempt = uc.maxAttempts
	}

	if err != nil {
		if appointmentRepo.IsSerializationFailure(err) {
			err = fmt.Errorf("%w: concurrent booking for staff=%d", ErrSlotConflict, req.StaffID)
		}
		outcome := outcomeOf(err)
		uc.metrics.ObserveBooking(operation, outcome)
		uc.metrics.ObserveCommitAttempts(outcome, attempt)
		if outcome == "error" {
			uc.logger.Error("CommitBooking: failed for staff=%d: %v", req.StaffID, err)
		} else {
			uc.logger.Warn("CommitBooking: rejected for staff=%d: %v", req.StaffID, err)
		}
		return nil, err
	}

	uc.metrics.ObserveBooking(operation, "ok")
	uc.metrics.ObserveCommitAttempts("ok", attempt)
	uc.logger.Info("CommitBooking: successfully created appointment id=%d, status=%s, attempts=%d",
		created.ID, created.Status, attempt)

	return &Response{
		ID:             created.ID,
		OrganizationID: created.OrganizationID,
		ClientID:       created.ClientID,
		StaffID:        req.StaffID,
		StartTime:      created.StartTime,
		EndTime:        created.EndTime,
		Status:         created.Status,
		Pets:           created.Pets,
		TotalDuration:  duration,
		TotalAmount:    created.TotalAmount,
		DepositAmount:  created.DepositAmount,
		CreatedAt:      created.CreatedAt,
	}, nil
}

// commit выполняет одну попытку внутри транзакции
func (uc *UseCase) commit(ctx context.Context, req *Request) (*domain.Appointment, int, error) {
	now := uc.timeProvider.Now()
	start := req.StartTime

	// 2.1. Загружаем снимок, записи сотрудника блокируются
	in, err := uc.loader.Load(ctx, &snapshot.Request{
		OrganizationID: req.OrganizationID,
		ClientID:       req.UserID,
		StaffID:        req.StaffID,
		Start:          &start,
		Now:            now,
		Pets:           toSnapshotPets(req.Pets),
	})
	if err != nil {
		return nil, 0, mapLoadError(err)
	}

	// 2.2. Пересчитываем квоту и проверяем слот и политику
	quote, err := uc.engine.Quote(*in)
	if err != nil {
		return nil, 0, mapQuoteError(err)
	}
	if err := quote.Validate(); err != nil {
		if quote.Violation != nil {
			return nil, 0, quote.Violation
		}
		return nil, 0, err
	}

	// 2.3. Сохраняем запись, буфер берется из текущих настроек сотрудника
	appointment := quote.Appointment(req.OrganizationID, req.UserID, req.StaffID,
		in.Availability.BufferMinutesBetweenAppointments)

	created, err := uc.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrOverlap):
			return nil, 0, fmt.Errorf("%w: start=%s", ErrSlotConflict, start.Format(time.RFC3339))
		case appointmentRepo.IsSerializationFailure(err):
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	// 2.4. Событие для внешних подписчиков в той же транзакции
	event, err := domain.NewAppointmentEvent(domain.EventAppointmentBooked, created, nil, now)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := uc.outboxRepo.Insert(ctx, event); err != nil {
		if appointmentRepo.IsSerializationFailure(err) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%w: failed to write outbox event: %v", ErrInternal, err)
	}

	return created, quote.TotalDuration, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrSlotConflict):
		return "slot_conflict"
	case errors.Is(err, ErrPolicyViolation):
		return "policy_violation"
	case errors.Is(err, ErrInternal):
		return "error"
	default:
		return "rejected"
	}
}

func toSnapshotPets(pets []PetRequest) []snapshot.PetRequest {
	result := make([]snapshot.PetRequest, 0, len(pets))
	for _, p := range pets {
		services := make([]snapshot.ServiceRequest, 0, len(p.Services))
		for _, s := range p.Services {
			services = append(services, snapshot.ServiceRequest{ServiceID: s.ServiceID, AddonIDs: s.AddonIDs})
		}
		result = append(result, snapshot.PetRequest{PetID: p.PetID, Services: services})
	}
	return result
}

// mapLoadError переводит ошибки загрузки снимка в ошибки use case
func mapLoadError(err error) error {
	switch {
	case errors.Is(err, snapshot.ErrPetNotFound):
		return fmt.Errorf("%w: %v", ErrPetNotFound, err)
	case errors.Is(err, snapshot.ErrServiceNotFound):
		return fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	default:
		return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
	}
}

// mapQuoteError переводит ошибки расчета в ошибки use case
func mapQuoteError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrUnknownModifier):
		return fmt.Errorf("%w: %v", ErrUnknownModifier, err)
	case errors.Is(err, pricing.ErrInactiveService):
		return fmt.Errorf("%w: %v", ErrInactiveService, err)
	case errors.Is(err, availability.ErrStaffNotFound):
		return fmt.Errorf("%w: %v", ErrStaffNotFound, err)
	case errors.Is(err, booking.ErrNoPets),
		errors.Is(err, booking.ErrNoServices),
		errors.Is(err, booking.ErrDuplicatePet),
		errors.Is(err, pricing.ErrInvalidSelection),
		errors.Is(err, availability.ErrInvalidDuration):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: quote failed: %v", ErrInternal, err)
	}
}
