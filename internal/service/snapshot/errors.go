package snapshot

import "errors"

var (
	// ErrPetNotFound возвращается, когда питомец не найден у клиента
	ErrPetNotFound = errors.New("snapshot: pet not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге организации
	ErrServiceNotFound = errors.New("snapshot: service not found")

	// ErrInvalidTimezone возвращается, когда часовой пояс организации не распознан
	ErrInvalidTimezone = errors.New("snapshot: invalid organization timezone")

	// ErrInternal возвращается при внутренних ошибках загрузки
	ErrInternal = errors.New("snapshot: internal error")
)
