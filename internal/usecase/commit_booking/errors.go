package commit_booking

import (
	"errors"

	"github.com/m04kA/SMC-GroomingService/internal/engine/booking"
	"github.com/m04kA/SMC-GroomingService/internal/engine/policy"
)

var (
	// ErrSlotConflict возвращается, когда слот занят к моменту фиксации записи.
	// Клиенту нужно перезапросить квоту и выбрать другое время.
	ErrSlotConflict = booking.ErrSlotConflict

	// ErrPolicyViolation базовая ошибка нарушений политики бронирования.
	// Конкретная причина доступна через policy.AsViolation.
	ErrPolicyViolation = policy.ErrPolicyViolation

	// ErrPetNotFound возвращается, когда питомец не найден у клиента
	ErrPetNotFound = errors.New("commit_booking: pet not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге организации
	ErrServiceNotFound = errors.New("commit_booking: service not found")

	// ErrInactiveService возвращается, когда услуга снята с продажи
	ErrInactiveService = errors.New("commit_booking: service is not active")

	// ErrUnknownModifier возвращается, когда выбранный addon не принадлежит услуге
	ErrUnknownModifier = errors.New("commit_booking: unknown modifier")

	// ErrStaffNotFound возвращается, когда у сотрудника не настроено расписание
	ErrStaffNotFound = errors.New("commit_booking: staff scheduling is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_booking: internal error")
)
