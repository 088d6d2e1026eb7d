package worker

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"formae/internal/metrics"
)

// ChangeEvent describes a mutation that subscribed clients may want to
// refresh on. Delivery is best-effort; correctness never depends on it.
type ChangeEvent struct {
	Entity string
	Action string
	ID     uuid.UUID
}

// Notifier drains the change-event channel and fans events out to the
// realtime channel. The current sink is the log plus a counter; a pub/sub
// backend can be swapped in behind Publish.
type Notifier struct {
	Ch     <-chan ChangeEvent
	logger *slog.Logger
}

func NewNotifier(ch <-chan ChangeEvent, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{Ch: ch, logger: logger}
}

func (n *Notifier) Run(ctx context.Context) {
	n.logger.Info("notifier started")
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notifier stopped")
			return
		case ev := <-n.Ch:
			n.Publish(ev)
		}
	}
}

func (n *Notifier) Publish(ev ChangeEvent) {
	metrics.IncChangeEvent(ev.Entity, ev.Action)
	n.logger.Info("change event",
		"entity", ev.Entity,
		"action", ev.Action,
		"id", ev.ID.String(),
	)
}
