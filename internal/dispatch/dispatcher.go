// Package dispatch routes notifications through the available delivery
// channels according to the owner's preference.
package dispatch

import (
	"context"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/petclinic/reminder-notifier/internal/channel"
	"github.com/petclinic/reminder-notifier/internal/model"
)

//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatch/mock.go -package=mocks

// notificationStore persists the dispatch outcome.
type notificationStore interface {
	UpdateDispatchResult(ctx context.Context, n *model.Notification) error
}

// cache mirrors the notification status for fast API lookups.
type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
}

// Dispatcher holds an ordered collection of channel senders and never
// special-cases a concrete channel. A notification may go out on several
// channels independently; one channel failing does not block another.
type Dispatcher struct {
	senders  []channel.Sender
	store    notificationStore
	cache    cache
	strategy retry.Strategy
}

// NewDispatcher creates a Dispatcher over the given senders, in order.
func NewDispatcher(senders []channel.Sender, store notificationStore, cache cache, strategy retry.Strategy) *Dispatcher {
	return &Dispatcher{senders: senders, store: store, cache: cache, strategy: strategy}
}

// Dispatch routes the notification through every sender whose CanHandle
// check passes and reports whether at least one delivery succeeded.
//
// When no sender claims the notification (or every claim fails without
// resolving the status), a still-pending notification is marked skipped so
// that every dispatched notification exits the pending state. The outcome is
// persisted regardless of the result.
func (d *Dispatcher) Dispatch(ctx context.Context, n *model.Notification) bool {
	sent := false

	for _, s := range d.senders {
		if s.CanHandle(n) {
			ok := s.Send(ctx, n)
			sent = sent || ok
		}
	}

	if !sent && n.Status == model.StatusPending {
		zlog.Logger.Warn().Str("id", n.ID.String()).Msg("no channel could send notification")
		n.Status = model.StatusSkipped
	}

	if err := d.store.UpdateDispatchResult(ctx, n); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to persist dispatch result")
	}

	if err := d.cache.SetWithRetry(ctx, d.strategy, n.ID.String(), string(n.Status)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to cache notification status")
	}

	return sent
}

// DispatchImmediately forces routing outside the periodic sweeps, for
// on-demand and test-notification callers. Same contract as Dispatch,
// including the pending-to-skipped fallback.
func (d *Dispatcher) DispatchImmediately(ctx context.Context, n *model.Notification) bool {
	return d.Dispatch(ctx, n)
}
