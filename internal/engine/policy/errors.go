package policy

import (
	"errors"
	"fmt"
)

// ErrPolicyViolation базовая ошибка для всех нарушений политики бронирования
var ErrPolicyViolation = errors.New("policy: booking violates organization policy")

// Reason причина нарушения политики, отдается клиенту как есть
type Reason string

const (
	ReasonTooSoon     Reason = "too_soon"
	ReasonTooFar      Reason = "too_far"
	ReasonTooManyPets Reason = "too_many_pets"
	ReasonBlocked     Reason = "blocked"
)

// PolicyViolationError нарушение политики с конкретной причиной
type PolicyViolationError struct {
	Reason  Reason
	Message string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("policy: %s: %s", e.Reason, e.Message)
}

// Is позволяет проверять errors.Is(err, ErrPolicyViolation)
func (e *PolicyViolationError) Is(target error) bool {
	return target == ErrPolicyViolation
}

func violation(reason Reason, format string, args ...interface{}) *PolicyViolationError {
	return &PolicyViolationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// AsViolation извлекает PolicyViolationError из цепочки ошибок
func AsViolation(err error) (*PolicyViolationError, bool) {
	var v *PolicyViolationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
