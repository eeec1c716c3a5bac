package availability

import "errors"

var (
	// ErrStaffNotFound возвращается, когда у сотрудника нет настроек доступности
	ErrStaffNotFound = errors.New("availability: staff availability is not configured")

	// ErrInvalidDuration возвращается при неположительной длительности
	ErrInvalidDuration = errors.New("availability: requested duration must be positive")

	// ErrInvalidSchedule возвращается, когда время в расписании не парсится
	ErrInvalidSchedule = errors.New("availability: invalid day schedule")
)
