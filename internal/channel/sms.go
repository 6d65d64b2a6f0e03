package channel

import (
	"context"
	"strings"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/petclinic/reminder-notifier/internal/model"
)

//go:generate mockgen -source=sms.go -destination=../mocks/channel/sms_mock.go -package=mocks

// smsCharLimit is the hard limit for a single outgoing SMS.
const smsCharLimit = 160

// smsClient is the SMS transport used by the SMS sender.
type smsClient interface {
	Send(ctx context.Context, to, msg string) error
}

// SMSSender delivers notifications to the owner's phone number.
type SMSSender struct {
	client  smsClient
	enabled bool
	timeout time.Duration
}

// NewSMSSender creates an SMS channel sender. When enabled is false the
// sender skips every notification without attempting transport. The timeout
// bounds each transport call.
func NewSMSSender(client smsClient, enabled bool, timeout time.Duration) *SMSSender {
	return &SMSSender{client: client, enabled: enabled, timeout: timeout}
}

// CanHandle reports whether the owner has a phone number and a preference
// that includes SMS.
func (s *SMSSender) CanHandle(n *model.Notification) bool {
	return n.Owner.Telephone != "" && n.Owner.Preference.IncludesSMS()
}

// Send attempts SMS delivery. A disabled channel marks the notification
// skipped without a transport call. On success the notification is marked
// sent; on transport failure it is marked failed and the error is logged,
// never propagated.
func (s *SMSSender) Send(ctx context.Context, n *model.Notification) bool {
	if !s.CanHandle(n) {
		zlog.Logger.Debug().Str("id", n.ID.String()).Msg("sms channel skipped for notification")
		return false
	}

	if !s.enabled {
		n.Status = model.StatusSkipped
		zlog.Logger.Warn().Str("id", n.ID.String()).Msg("sms channel is disabled, skipping notification")
		return false
	}

	to := formatPhoneNumber(n.Owner.Telephone)
	body := truncateIfNeeded(n.Message)

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Send(sendCtx, to, body); err != nil {
		n.Status = model.StatusFailed
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to send sms notification")
		return false
	}

	n.MarkSent(time.Now())
	zlog.Logger.Info().Str("id", n.ID.String()).Str("to", to).Msg("sms notification sent")

	return true
}

// formatPhoneNumber normalizes a raw phone number for the SMS gateway:
// non-digits are stripped, 10-digit numbers get the US country code, and
// anything else gets a leading '+'.
func formatPhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	digitsOnly := digits.String()
	if digitsOnly == "" {
		return phone
	}

	if len(digitsOnly) == 10 {
		return "+1" + digitsOnly
	}

	return "+" + digitsOnly
}

// truncateIfNeeded enforces the single-SMS character limit, replacing the
// tail with an ellipsis when the message is cut.
func truncateIfNeeded(msg string) string {
	if len(msg) > smsCharLimit {
		return msg[:smsCharLimit-3] + "..."
	}

	return msg
}
