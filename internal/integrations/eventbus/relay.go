package eventbus

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

const defaultBatchSize = 100

// Relay по расписанию переносит неопубликованные события из outbox в брокер.
// Выборка, публикация и отметка идут в одной транзакции: если публикация
// не удалась, события останутся неопубликованными и уйдут при следующем запуске.
type Relay struct {
	outboxRepo   OutboxRepository
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	batchSize    int
	cron         *cron.Cron
	timeProvider TimeProvider
	logger       Logger
}

// NewRelay создает relay. Запуск по расписанию выполняет Start.
func NewRelay(
	outboxRepo OutboxRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	batchSize int,
	logger Logger,
) *Relay {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Relay{
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		batchSize:    batchSize,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start запускает relay по cron выражению (поддерживаются дескрипторы вида "@every 5s").
// Пока предыдущий запуск не завершился, следующий пропускается.
func (r *Relay) Start(schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(schedule, func() {
		if _, err := r.RunOnce(context.Background()); err != nil {
			r.logger.Error("OutboxRelay: run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	r.cron = c
	c.Start()
	r.logger.Info("OutboxRelay: started with schedule %q, batch size %d", schedule, r.batchSize)
	return nil
}

// Stop останавливает расписание и ждет завершения текущего запуска
func (r *Relay) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}

	select {
	case <-r.cron.Stop().Done():
		r.logger.Info("OutboxRelay: stopped")
	case <-ctx.Done():
		r.logger.Warn("OutboxRelay: stop timed out: %v", ctx.Err())
	}
}

// RunOnce публикует одну пачку событий и возвращает их количество
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	published := make(map[string]int)
	count := 0

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Забираем пачку неопубликованных событий
		events, err := r.outboxRepo.FetchUnpublished(txCtx, r.batchSize)
		if err != nil {
			return fmt.Errorf("%w: fetch: %v", ErrOutbox, err)
		}
		if len(events) == 0 {
			return nil
		}

		// 2. Публикуем в брокер
		if err := r.publisher.Publish(txCtx, events); err != nil {
			return err
		}

		// 3. Отмечаем опубликованными
		ids := make([]int64, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
			published[e.EventType]++
		}
		if err := r.outboxRepo.MarkPublished(txCtx, ids, r.timeProvider.Now()); err != nil {
			return fmt.Errorf("%w: mark published: %v", ErrOutbox, err)
		}

		count = len(events)
		return nil
	})
	if err != nil {
		return 0, err
	}

	for eventType, n := range published {
		r.metrics.ObserveOutboxPublished(eventType, n)
	}
	if count > 0 {
		r.logger.Info("OutboxRelay: published %d events", count)
	}

	return count, nil
}
