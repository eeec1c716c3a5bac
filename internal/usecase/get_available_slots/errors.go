package get_available_slots

import "errors"

var (
	// ErrStaffNotFound возвращается, когда у сотрудника не настроено расписание
	ErrStaffNotFound = errors.New("get_available_slots: staff scheduling is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
