package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	staffRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-GroomingService/internal/service/staff/models"
)

// Service сервис настроек доступности сотрудников
type Service struct {
	staffRepo    StaffRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(staffRepo StaffRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		staffRepo:    staffRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetAvailability возвращает настройки сотрудника с полным недельным расписанием
func (s *Service) GetAvailability(ctx context.Context, staffID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: fetching availability for staff=%d", staffID)

	availability, err := s.staffRepo.GetAvailability(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("GetAvailability: staff=%d has no availability", staffID)
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("GetAvailability: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailability(availability), nil
}

// UpdateAvailability заменяет настройки доступности сотрудника.
// Расписание принимается только целиком: ровно 7 дней, по одному на каждый день недели.
// Изменять настройки может только сам сотрудник.
func (s *Service) UpdateAvailability(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("UpdateAvailability: staff=%d, organization=%d, user=%d", req.StaffID, req.OrganizationID, req.UserID)

	// 1. Права доступа
	if req.UserID != req.StaffID {
		s.logger.Warn("UpdateAvailability: user=%d is not staff=%d", req.UserID, req.StaffID)
		return nil, ErrAccessDenied
	}

	// 2. Валидация входных данных
	availability, err := s.toDomain(req)
	if err != nil {
		s.logger.Warn("UpdateAvailability: validation failed for staff=%d: %v", req.StaffID, err)
		return nil, err
	}

	// 3. Сохраняем настройки и все дни одной транзакцией
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.staffRepo.UpsertAvailability(txCtx, availability)
	})
	if err != nil {
		s.logger.Error("UpdateAvailability: failed to save availability for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateAvailability: successfully updated availability for staff=%d", req.StaffID)
	return models.FromDomainAvailability(availability), nil
}

func (s *Service) toDomain(req *models.UpdateAvailabilityRequest) (*domain.StaffAvailability, error) {
	if req.StaffID <= 0 || req.OrganizationID <= 0 {
		return nil, fmt.Errorf("%w: staffID and organizationID must be positive", ErrInvalidInput)
	}
	if req.MaxAppointmentsPerDay < domain.MinAppointmentsPerDay || req.MaxAppointmentsPerDay > domain.MaxAppointmentsPerDay {
		return nil, fmt.Errorf("%w: maxAppointmentsPerDay must be between %d and %d",
			ErrInvalidInput, domain.MinAppointmentsPerDay, domain.MaxAppointmentsPerDay)
	}
	if req.BufferMinutesBetweenAppointments < 0 || req.BufferMinutesBetweenAppointments > domain.MaxBufferMinutes {
		return nil, fmt.Errorf("%w: bufferMinutesBetweenAppointments must be between 0 and %d",
			ErrInvalidInput, domain.MaxBufferMinutes)
	}

	days, err := req.ToDomainSchedule()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	schedule, err := domain.NewWeeklySchedule(days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &domain.StaffAvailability{
		StaffID:                          req.StaffID,
		OrganizationID:                   req.OrganizationID,
		WeeklySchedule:                   schedule,
		MaxAppointmentsPerDay:            req.MaxAppointmentsPerDay,
		BufferMinutesBetweenAppointments: req.BufferMinutesBetweenAppointments,
		UpdatedAt:                        s.timeProvider.Now(),
	}, nil
}
