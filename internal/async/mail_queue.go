// Package async holds the background mail queue. Receipt acceptance
// must answer the user immediately, so mail delivery is decoupled from
// the request path through a bounded worker queue.
package async

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/introlaser/shop-bot/internal/notify"
)

type MailQueue struct {
	mailer  notify.Mailer
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan notify.Message
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*MailQueue)

func WithWorkers(n int) Option {
	return func(q *MailQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *MailQueue) {
		if n > 0 {
			q.ch = make(chan notify.Message, n)
		}
	}
}
func WithSendTimeout(d time.Duration) Option {
	return func(q *MailQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewMailQueue(mailer notify.Mailer, logger *slog.Logger, opts ...Option) *MailQueue {
	q := &MailQueue{
		mailer:  mailer,
		logger:  logger,
		workers: 2,
		timeout: 1 * time.Minute,
		ch:      make(chan notify.Message, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *MailQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("mail worker started", "worker_id", workerID)

				for msg := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.mailer.Send(ctx, msg)
					cancel()

					if err != nil {
						q.logger.Error("mail delivery failed", "worker_id", workerID, "to", msg.To, "error", err)
					}
				}

				q.logger.Info("mail worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Enqueue queues one message. When the buffer is full the caller blocks
// rather than dropping mail.
func (q *MailQueue) Enqueue(_ context.Context, msg notify.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: mail queue is shutting down", "to", msg.To)
		return nil
	}
	select {
	case q.ch <- msg:
		q.logger.Info("queued mail", "to", msg.To, "subject", msg.Subject)
	default:
		q.logger.Warn("mail queue full, applying backpressure", "to", msg.To)
		q.ch <- msg
	}
	return nil
}

func (q *MailQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("mail queue shutdown interrupted by context")
	case <-done:
		q.logger.Info("mail queue drained, shutdown complete")
	}
}
