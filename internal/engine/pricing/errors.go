package pricing

import "errors"

var (
	// ErrUnknownModifier возвращается, когда выбранный addon не принадлежит услуге
	ErrUnknownModifier = errors.New("pricing: unknown modifier")

	// ErrInactiveService возвращается, когда услуга неактивна
	ErrInactiveService = errors.New("pricing: service is not active")

	// ErrInvalidSelection возвращается при пустой или некорректной выборке
	ErrInvalidSelection = errors.New("pricing: invalid selection")
)
