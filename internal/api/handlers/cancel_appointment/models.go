package cancel_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	cancelAppointment "github.com/m04kA/SMC-GroomingService/internal/usecase/cancel_appointment"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	ID              int64           `json:"id"`
	Status          string          `json:"status"`
	CancellationFee decimal.Decimal `json:"cancellationFee"`
	IsLate          bool            `json:"isLate"`
	CancelledAt     time.Time       `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelResponse {
	return &CancelResponse{
		ID:              resp.ID,
		Status:          string(resp.Status),
		CancellationFee: resp.CancellationFee,
		IsLate:          resp.IsLate,
		CancelledAt:     resp.CancelledAt,
	}
}
