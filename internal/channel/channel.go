// Package channel implements the delivery channels a notification can be
// routed through. Every channel exposes the same two capabilities: a
// preference check and a send attempt.
package channel

import (
	"context"

	"github.com/petclinic/reminder-notifier/internal/model"
)

//go:generate mockgen -source=channel.go -destination=../mocks/channel/channel_mock.go -package=mocks

// Sender is a capability that can attempt delivery over one medium.
//
// CanHandle must be a pure check against the recipient's contact endpoints
// and channel preference. Send must resolve the notification's status on
// every attempted delivery: sent on success, failed on transport error,
// skipped when the channel is administratively disabled. When CanHandle is
// false, Send returns false without side effects.
type Sender interface {
	CanHandle(n *model.Notification) bool
	Send(ctx context.Context, n *model.Notification) bool
}
