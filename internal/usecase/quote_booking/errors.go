package quote_booking

import (
	"errors"

	"github.com/m04kA/SMC-GroomingService/internal/engine/policy"
)

var (
	// ErrPetNotFound возвращается, когда питомец не найден у клиента
	ErrPetNotFound = errors.New("quote_booking: pet not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге организации
	ErrServiceNotFound = errors.New("quote_booking: service not found")

	// ErrInactiveService возвращается, когда услуга снята с продажи
	ErrInactiveService = errors.New("quote_booking: service is not active")

	// ErrUnknownModifier возвращается, когда выбранный addon не принадлежит услуге
	ErrUnknownModifier = errors.New("quote_booking: unknown modifier")

	// ErrStaffNotFound возвращается, когда у сотрудника не настроено расписание
	ErrStaffNotFound = errors.New("quote_booking: staff scheduling is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_booking: internal error")
)

// ErrPolicyViolation нарушения политики не являются ошибкой квоты,
// они возвращаются в Response.Violation. Переэкспорт для удобства вызывающего кода.
var ErrPolicyViolation = policy.ErrPolicyViolation
