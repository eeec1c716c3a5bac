package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-GroomingService/internal/service/appointments/models"
)

// Service сервис для просмотра записей
type Service struct {
	appointmentRepo AppointmentRepository
	loader          SnapshotLoader
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, loader SnapshotLoader, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		loader:          loader,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят клиент, на которого она оформлена, и назначенный сотрудник
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !canView(appointment, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetStaffSchedule возвращает активные записи сотрудника, начинающиеся в указанный день
// Доступно только самому сотруднику
func (s *Service) GetStaffSchedule(ctx context.Context, req *models.GetStaffScheduleRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetStaffSchedule: staff=%d, organization=%d, date=%s, user=%d",
		req.StaffID, req.OrganizationID, req.Date.Format(domain.DateFormat), req.UserID)

	if req.OrganizationID <= 0 || req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: organizationID and staffID must be positive", ErrInvalidInput)
	}
	if req.UserID != req.StaffID {
		s.logger.Warn("GetStaffSchedule: user=%d is not staff=%d", req.UserID, req.StaffID)
		return nil, ErrAccessDenied
	}

	_, loc, err := s.loader.Policies(ctx, req.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedule - load policies: %v", ErrInternal, err)
	}

	schedule, err := s.loader.Schedule(ctx, req.OrganizationID, req.StaffID, req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedule - load schedule: %v", ErrInternal, err)
	}
	if schedule.Availability == nil {
		return nil, ErrStaffNotFound
	}

	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	onDay := make([]domain.Appointment, 0, len(schedule.Appointments))
	for _, a := range schedule.Appointments {
		if !a.StartTime.Before(dayStart) && a.StartTime.Before(dayEnd) {
			onDay = append(onDay, a)
		}
	}

	s.logger.Info("GetStaffSchedule: found %d appointments for staff=%d", len(onDay), req.StaffID)
	return models.FromDomainAppointmentList(onDay), nil
}

func canView(a *domain.Appointment, userID int64) bool {
	if a.ClientID == userID {
		return true
	}
	return a.GroomerID != nil && *a.GroomerID == userID
}
