package update_staff_availability

import (
	"context"

	"github.com/m04kA/SMC-GroomingService/internal/service/staff/models"
)

type StaffService interface {
	UpdateAvailability(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
