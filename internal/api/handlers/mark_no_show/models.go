package mark_no_show

import (
	"github.com/shopspring/decimal"

	markNoShow "github.com/m04kA/SMC-GroomingService/internal/usecase/mark_no_show"
)

// NoShowResponse HTTP response model
type NoShowResponse struct {
	ID        int64           `json:"id"`
	Status    string          `json:"status"`
	NoShowFee decimal.Decimal `json:"noShowFee"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *markNoShow.Response) *NoShowResponse {
	return &NoShowResponse{
		ID:        resp.ID,
		Status:    string(resp.Status),
		NoShowFee: resp.NoShowFee,
	}
}
