package booking

import "errors"

var (
	// ErrSlotConflict возвращается, когда слот занят к моменту фиксации записи
	// Единственная ошибка, после которой имеет смысл перезапросить квоту и повторить
	ErrSlotConflict = errors.New("booking: slot is no longer available")

	// ErrNoPets возвращается, когда в запросе нет ни одного питомца
	ErrNoPets = errors.New("booking: at least one pet is required")

	// ErrNoServices возвращается, когда для питомца не выбрано ни одной услуги
	ErrNoServices = errors.New("booking: every pet needs at least one service")

	// ErrDuplicatePet возвращается, когда питомец указан дважды
	ErrDuplicatePet = errors.New("booking: pet is listed more than once")

	// ErrMissingPolicies возвращается, когда не переданы политики организации
	ErrMissingPolicies = errors.New("booking: booking policies are required")
)
