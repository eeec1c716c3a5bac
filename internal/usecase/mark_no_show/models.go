package mark_no_show

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Request модель запроса на отметку неявки
type Request struct {
	UserID        int64 // ID грумера
	AppointmentID int64
}

// Response модель ответа с начисленным штрафом
type Response struct {
	ID        int64
	Status    domain.AppointmentStatus
	NoShowFee decimal.Decimal
}
