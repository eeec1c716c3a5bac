package eventbus

import "errors"

var (
	// ErrPublish возвращается, когда брокер не принял сообщения
	ErrPublish = errors.New("eventbus: failed to publish events")

	// ErrOutbox возвращается при ошибках чтения или обновления outbox
	ErrOutbox = errors.New("eventbus: outbox storage error")

	// ErrInvalidSchedule возвращается при некорректном cron выражении
	ErrInvalidSchedule = errors.New("eventbus: invalid relay schedule")
)
