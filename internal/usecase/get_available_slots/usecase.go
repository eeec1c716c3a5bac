package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/availability"
)

// UseCase use case для получения доступных слотов сотрудника на день
type UseCase struct {
	loader       SnapshotLoader
	calculator   SlotCalculator
	evaluator    PolicyEvaluator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	loader SnapshotLoader,
	calculator SlotCalculator,
	evaluator PolicyEvaluator,
	logger Logger,
) *UseCase {
	return &UseCase{
		loader:       loader,
		calculator:   calculator,
		evaluator:    evaluator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, organization=%d, staff=%d, date=%s, duration=%d",
		req.UserID, req.OrganizationID, req.StaffID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Политики и часовой пояс организации
	policies, loc, err := uc.loader.Policies(ctx, req.OrganizationID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get policies for organization=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: failed to get policies: %v", ErrInternal, err)
	}

	// Дата из запроса трактуется как календарный день в поясе организации
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	// 4. Расписание, отгулы и записи сотрудника
	schedule, err := uc.loader.Schedule(ctx, req.OrganizationID, req.StaffID, date, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Свободные слоты
	starts, err := uc.calculator.ListAvailableSlots(availability.Input{
		StaffID:         req.StaffID,
		Date:            date,
		Location:        loc,
		DurationMinutes: req.DurationMinutes,
		Availability:    schedule.Availability,
		TimeOff:         schedule.TimeOff,
		Appointments:    schedule.Appointments,
	})
	if err != nil {
		if errors.Is(err, availability.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff=%d has no availability in organization=%d", req.StaffID, req.OrganizationID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to calculate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate slots: %v", ErrInternal, err)
	}

	// 6. Оставляем только слоты внутри окна бронирования
	allowed := make([]time.Time, 0, len(starts))
	for _, s := range starts {
		if uc.evaluator.CheckBookingWindow(policies, s, now) != nil {
			continue
		}
		allowed = append(allowed, s)
	}
	slots := domain.SlotsFromStarts(allowed, req.DurationMinutes)

	uc.logger.Info("GetAvailableSlots: found %d slots for staff=%d on %s",
		len(slots), req.StaffID, date.Format(domain.DateFormat))

	return &Response{
		Date:            date,
		StaffID:         req.StaffID,
		DurationMinutes: req.DurationMinutes,
		Timezone:        loc.String(),
		Slots:           slots,
	}, nil
}
