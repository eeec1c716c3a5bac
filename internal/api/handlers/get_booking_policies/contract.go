package get_booking_policies

import (
	"context"

	"github.com/m04kA/SMC-GroomingService/internal/service/policies/models"
)

type PoliciesService interface {
	Get(ctx context.Context, organizationID int64) (*models.PoliciesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
