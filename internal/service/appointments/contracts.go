package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/service/snapshot"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// SnapshotLoader загружает политики и расписание сотрудника
type SnapshotLoader interface {
	Policies(ctx context.Context, organizationID int64) (*domain.BookingPolicies, *time.Location, error)
	Schedule(ctx context.Context, organizationID, staffID int64, date time.Time, loc *time.Location) (*snapshot.Schedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
