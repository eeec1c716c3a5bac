package commit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/booking"
	"github.com/m04kA/SMC-GroomingService/internal/service/snapshot"
)

// SnapshotLoader загружает живые данные для расчета квоты
// Внутри транзакции записи сотрудника блокируются (FOR UPDATE)
type SnapshotLoader interface {
	Load(ctx context.Context, req *snapshot.Request) (*booking.QuoteInput, error)
}

// QuoteEngine чистый расчет квоты по снимку данных
type QuoteEngine interface {
	Quote(in booking.QuoteInput) (*booking.Quote, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// OutboxRepository интерфейс репозитория исходящих событий
type OutboxRepository interface {
	Insert(ctx context.Context, e *domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для учета результатов операций
type Metrics interface {
	ObserveBooking(operation, outcome string)
	ObserveCommitAttempts(outcome string, attempts int)
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
