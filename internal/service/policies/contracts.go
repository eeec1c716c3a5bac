package policies

import (
	"context"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByOrganization(ctx context.Context, organizationID int64) (*domain.BookingPolicies, error)
	Upsert(ctx context.Context, p *domain.BookingPolicies) (*domain.BookingPolicies, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
