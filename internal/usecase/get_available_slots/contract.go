package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/availability"
	"github.com/m04kA/SMC-GroomingService/internal/service/snapshot"
)

// SnapshotLoader загружает политики организации и расписание сотрудника
type SnapshotLoader interface {
	Policies(ctx context.Context, organizationID int64) (*domain.BookingPolicies, *time.Location, error)
	Schedule(ctx context.Context, organizationID, staffID int64, date time.Time, loc *time.Location) (*snapshot.Schedule, error)
}

// SlotCalculator вычисляет свободные слоты на день
type SlotCalculator interface {
	ListAvailableSlots(in availability.Input) ([]time.Time, error)
}

// PolicyEvaluator проверяет окно бронирования организации
type PolicyEvaluator interface {
	CheckBookingWindow(p *domain.BookingPolicies, start, now time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
