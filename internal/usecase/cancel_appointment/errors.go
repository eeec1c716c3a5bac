package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не клиент и не грумер записи
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrInvalidStatus возвращается, когда запись уже началась, завершена или отменена
	ErrInvalidStatus = errors.New("cancel_appointment: appointment cannot be cancelled in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
