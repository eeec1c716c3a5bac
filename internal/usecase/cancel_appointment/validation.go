package cancel_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	return nil
}

// canCancel отменить запись может клиент или назначенный грумер
func canCancel(a *domain.Appointment, userID int64) bool {
	if a.ClientID == userID {
		return true
	}
	return a.GroomerID != nil && *a.GroomerID == userID
}
