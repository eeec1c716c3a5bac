package update_booking_policies

import (
	"context"

	"github.com/m04kA/SMC-GroomingService/internal/service/policies/models"
)

type PoliciesService interface {
	Update(ctx context.Context, req *models.UpdatePoliciesRequest) (*models.PoliciesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
