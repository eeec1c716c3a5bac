package appointment

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrOverlap возвращается при нарушении ограничения appointments_no_overlap
	ErrOverlap = errors.New("appointment.repository: staff time range overlaps an existing appointment")

	// ErrSerialization возвращается, когда SERIALIZABLE транзакция не может быть сериализована
	ErrSerialization = errors.New("appointment.repository: serialization failure")

	// ErrInvalidTransition возвращается, когда запись нельзя перевести в новый статус
	ErrInvalidTransition = errors.New("appointment.repository: invalid status transition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

// SQLSTATE коды Postgres
const (
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// classify возвращает ErrOverlap или ErrSerialization для соответствующих ошибок драйвера
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code {
	case codeExclusionViolation:
		return ErrOverlap
	case codeSerializationFailure, codeDeadlockDetected:
		return ErrSerialization
	}
	return nil
}

// IsSerializationFailure сообщает, что транзакцию можно повторить целиком.
// Ошибка может прийти как из запроса, так и из COMMIT.
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerialization) {
		return true
	}
	return errors.Is(classify(err), ErrSerialization)
}
