package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
	appointmentRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/appointment"
)

const operation = "cancel"

// UseCase use case для отмены записи со штрафом за позднюю отмену
type UseCase struct {
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	policyLoader    PolicyLoader
	fees            FeeCalculator
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	policyLoader PolicyLoader,
	fees FeeCalculator,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		policyLoader:    policyLoader,
		fees:            fees,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: user=%d, appointment=%d", req.UserID, req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var resp *Response

	// 3. Запись блокируется до конца транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем запись
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3.2. Права доступа и статус
		if !canCancel(appointment, req.UserID) {
			return ErrAccessDenied
		}
		if !appointment.CanBeCancelled() {
			return fmt.Errorf("%w: status=%s", ErrInvalidStatus, appointment.Status)
		}

		// 3.3. Штраф по политике организации
		policies, _, err := uc.policyLoader.Policies(txCtx, appointment.OrganizationID)
		if err != nil {
			return fmt.Errorf("%w: failed to get policies: %v", ErrInternal, err)
		}
		fee := uc.fees.CancellationFee(policies, appointment, now)

		// 3.4. Переводим в cancelled
		if err := uc.appointmentRepo.Cancel(txCtx, appointment.ID, fee, now); err != nil {
			if errors.Is(err, appointmentRepo.ErrInvalidTransition) {
				return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
			}
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}
		appointment.Status = domain.StatusCancelled
		appointment.CancellationFee = &fee
		appointment.CancelledAt = &now

		// 3.5. Событие для внешних подписчиков
		event, err := domain.NewAppointmentEvent(domain.EventAppointmentCancelled, appointment, &fee, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to write outbox event: %v", ErrInternal, err)
		}

		resp = &Response{
			ID:              appointment.ID,
			Status:          appointment.Status,
			CancellationFee: fee,
			IsLate:          policies.IsLateCancellation(appointment.StartTime, now),
			CancelledAt:     now,
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CancelAppointment: appointment=%d: %v", req.AppointmentID, err)
			uc.metrics.ObserveBooking(operation, "error")
		default:
			uc.logger.Warn("CancelAppointment: appointment=%d rejected: %v", req.AppointmentID, err)
			uc.metrics.ObserveBooking(operation, "rejected")
		}
		return nil, err
	}

	uc.metrics.ObserveBooking(operation, "ok")
	uc.logger.Info("CancelAppointment: appointment=%d cancelled, fee=%s, late=%t",
		resp.ID, resp.CancellationFee.StringFixed(pricing.MoneyPlaces), resp.IsLate)
	return resp, nil
}
