package mailer

import (
	"context"
	"sync"

	"github.com/whoestate/backend/internal/logging"
)

// Worker owns a bounded mail queue and a single delivery goroutine.
// Enqueue never blocks the calling request flow; when the queue is full the
// message is dropped and the drop is logged.
type Worker struct {
	sender Sender
	logger logging.Logger
	queue  chan Mail

	closeOnce sync.Once
	done      chan struct{}
}

// NewWorker creates a stopped worker with the given queue capacity.
// Call Run to start delivery.
func NewWorker(sender Sender, logger logging.Logger, queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Worker{
		sender: sender,
		logger: logger.With("module", "mailer"),
		queue:  make(chan Mail, queueSize),
		done:   make(chan struct{}),
	}
}

// Enqueue hands m to the worker. It returns immediately in all cases.
func (w *Worker) Enqueue(m Mail) {
	select {
	case w.queue <- m:
	default:
		w.logger.Warn(context.Background(), "mail queue full, dropping message", "to", m.To, "subject", m.Subject)
	}
}

// Run delivers queued mail until ctx is cancelled, then drains whatever is
// already queued before returning. Send failures are logged and swallowed.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case m := <-w.queue:
			w.deliver(m)
		case <-ctx.Done():
			for {
				select {
				case m := <-w.queue:
					w.deliver(m)
				default:
					return
				}
			}
		}
	}
}

// Wait blocks until Run has returned.
func (w *Worker) Wait() {
	<-w.done
}

func (w *Worker) deliver(m Mail) {
	// delivery gets its own context: the request that queued this mail is
	// long gone
	if err := w.sender.Send(context.Background(), m); err != nil {
		w.logger.Error(context.Background(), "mail delivery failed", "to", m.To, "subject", m.Subject, "error", err.Error())
		return
	}
	w.logger.Info(context.Background(), "mail delivered", "to", m.To, "subject", m.Subject)
}
