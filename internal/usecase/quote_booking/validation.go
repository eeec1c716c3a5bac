package quote_booking

import (
	"fmt"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.OrganizationID <= 0 {
		return fmt.Errorf("%w: organizationID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	// Нужен либо день, либо конкретное время начала
	if req.StartTime == nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date or startTime is required", ErrInvalidInput)
	}

	if len(req.Pets) == 0 {
		return fmt.Errorf("%w: at least one pet is required", ErrInvalidInput)
	}

	if len(req.Pets) > domain.MaxPetsPerAppointment {
		return fmt.Errorf("%w: at most %d pets per request", ErrInvalidInput, domain.MaxPetsPerAppointment)
	}

	for _, p := range req.Pets {
		if p.PetID <= 0 {
			return fmt.Errorf("%w: petID must be positive", ErrInvalidInput)
		}
		if len(p.Services) == 0 {
			return fmt.Errorf("%w: pet id=%d has no services", ErrInvalidInput, p.PetID)
		}
		for _, s := range p.Services {
			if s.ServiceID <= 0 {
				return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
			}
		}
	}

	return nil
}
