package quote_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/engine/booking"
	"github.com/m04kA/SMC-GroomingService/internal/service/snapshot"
)

// SnapshotLoader загружает живые данные для расчета квоты
type SnapshotLoader interface {
	Load(ctx context.Context, req *snapshot.Request) (*booking.QuoteInput, error)
}

// QuoteEngine чистый расчет квоты по снимку данных
type QuoteEngine interface {
	Quote(in booking.QuoteInput) (*booking.Quote, error)
}

// Metrics интерфейс для учета результатов операций
type Metrics interface {
	ObserveBooking(operation, outcome string)
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
