package cancel_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Request модель запроса на отмену записи
type Request struct {
	UserID        int64 // ID клиента или грумера
	AppointmentID int64
}

// Response модель ответа с результатом отмены
type Response struct {
	ID              int64
	Status          domain.AppointmentStatus
	CancellationFee decimal.Decimal
	IsLate          bool // Отмена внутри окна cancellationWindowHours
	CancelledAt     time.Time
}
