package mark_no_show

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("mark_no_show: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не является грумером записи
	ErrAccessDenied = errors.New("mark_no_show: access denied")

	// ErrNotStarted возвращается, когда время записи еще не наступило
	ErrNotStarted = errors.New("mark_no_show: appointment has not started yet")

	// ErrInvalidStatus возвращается, когда клиент уже пришел или запись отменена
	ErrInvalidStatus = errors.New("mark_no_show: appointment cannot be marked as no-show in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mark_no_show: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mark_no_show: internal error")
)
