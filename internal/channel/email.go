package channel

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/petclinic/reminder-notifier/internal/model"
)

//go:generate mockgen -source=email.go -destination=../mocks/channel/email_mock.go -package=mocks

// emailClient is the SMTP transport used by the email sender.
type emailClient interface {
	Send(to, subject, msg string) error
}

// EmailSender delivers notifications to the owner's email address.
type EmailSender struct {
	client emailClient
}

// NewEmailSender creates an email channel sender on top of the given SMTP client.
func NewEmailSender(client emailClient) *EmailSender {
	return &EmailSender{client: client}
}

// CanHandle reports whether the owner has an email address and a preference
// that includes email.
func (s *EmailSender) CanHandle(n *model.Notification) bool {
	return n.Owner.Email != "" && n.Owner.Preference.IncludesEmail()
}

// Send attempts email delivery. On success the notification is marked sent;
// on transport failure it is marked failed and the error is logged, never
// propagated.
func (s *EmailSender) Send(_ context.Context, n *model.Notification) bool {
	if !s.CanHandle(n) {
		zlog.Logger.Debug().Str("id", n.ID.String()).Msg("email channel skipped for notification")
		return false
	}

	subject := subjectForType(n.Type)

	if err := s.client.Send(n.Owner.Email, subject, n.Message); err != nil {
		n.Status = model.StatusFailed
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to send email notification")
		return false
	}

	n.MarkSent(time.Now())
	zlog.Logger.Info().Str("id", n.ID.String()).Str("to", n.Owner.Email).Msg("email notification sent")

	return true
}

// subjectForType derives the email subject line from the notification type.
func subjectForType(t model.NotificationType) string {
	switch t {
	case model.TypeAppointmentReminder:
		return "Pet Clinic: Appointment Reminder"
	case model.TypeMedicationReminder:
		return "Pet Clinic: Medication Reminder"
	case model.TypeVaccinationReminder:
		return "Pet Clinic: Vaccination Reminder"
	default:
		return "Pet Clinic Notification"
	}
}
