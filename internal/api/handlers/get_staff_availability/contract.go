package get_staff_availability

import (
	"context"

	"github.com/m04kA/SMC-GroomingService/internal/service/staff/models"
)

type StaffService interface {
	GetAvailability(ctx context.Context, staffID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
