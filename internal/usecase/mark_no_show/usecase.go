package mark_no_show

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
	appointmentRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/appointment"
)

const operation = "no_show"

// UseCase use case для отметки неявки клиента.
// Отметить неявку может только грумер записи и только после её начала.
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

// Execute выполняет use case отметки неявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkNoShow: user=%d, appointment=%d", req.UserID, req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MarkNoShow: validation failed: %v", err)
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

		// 3.2. Права доступа, статус и время
		if appointment.GroomerID == nil || *appointment.GroomerID != req.UserID {
			return ErrAccessDenied
		}
		if !appointment.CanBeMarkedNoShow() {
			return fmt.Errorf("%w: status=%s", ErrInvalidStatus, appointment.Status)
		}
		if now.Before(appointment.StartTime) {
			return fmt.Errorf("%w: starts at %s", ErrNotStarted, appointment.StartTime.Format(time.RFC3339))
		}

		// 3.3. Штраф не зависит от времени
		policies, _, err := uc.policyLoader.Policies(txCtx, appointment.OrganizationID)
		if err != nil {
			return fmt.Errorf("%w: failed to get policies: %v", ErrInternal, err)
		}
		fee := uc.fees.NoShowFee(policies, appointment)

		// 3.4. Переводим в no_show
		if err := uc.appointmentRepo.MarkNoShow(txCtx, appointment.ID, fee, now); err != nil {
			if errors.Is(err, appointmentRepo.ErrInvalidTransition) {
				return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
			}
			return fmt.Errorf("%w: failed to mark no-show: %v", ErrInternal, err)
		}
		appointment.Status = domain.StatusNoShow
		appointment.NoShowFee = &fee

		// 3.5. Событие для внешних подписчиков
		event, err := domain.NewAppointmentEvent(domain.EventAppointmentNoShow, appointment, &fee, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to write outbox event: %v", ErrInternal, err)
		}

		resp = &Response{ID: appointment.ID, Status: appointment.Status, NoShowFee: fee}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("MarkNoShow: appointment=%d: %v", req.AppointmentID, err)
			uc.metrics.ObserveBooking(operation, "error")
		} else {
			uc.logger.Warn("MarkNoShow: appointment=%d rejected: %v", req.AppointmentID, err)
			uc.metrics.ObserveBooking(operation, "rejected")
		}
		return nil, err
	}

	uc.metrics.ObserveBooking(operation, "ok")
	uc.logger.Info("MarkNoShow: appointment=%d marked as no-show, fee=%s",
		resp.ID, resp.NoShowFee.StringFixed(pricing.MoneyPlaces))
	return resp, nil
}
