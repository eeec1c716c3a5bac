package snapshot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByOrganization(ctx context.Context, organizationID int64) (*domain.BookingPolicies, error)
}

// StaffRepository интерфейс репозитория расписаний сотрудников
type StaffRepository interface {
	GetAvailability(ctx context.Context, staffID int64) (*domain.StaffAvailability, error)
	GetApprovedTimeOff(ctx context.Context, staffID int64, from, to time.Time) ([]domain.TimeOffRequest, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByStaffInRange(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]domain.Appointment, error)
	CountByClient(ctx context.Context, organizationID, clientID int64) (int, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetServicesByIDs(ctx context.Context, organizationID int64, ids []int64) ([]domain.Service, error)
}

// PetRepository интерфейс репозитория питомцев
type PetRepository interface {
	GetByIDs(ctx context.Context, clientID int64, ids []int64) ([]domain.Pet, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
