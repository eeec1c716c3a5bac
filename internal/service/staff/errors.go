package staff

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда у сотрудника нет настроек доступности
	ErrAvailabilityNotFound = errors.New("staff: availability not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("staff: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("staff: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("staff: internal error")
)
