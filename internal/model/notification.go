package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies what a notification reminds the owner about.
type NotificationType string

const (
	TypeAppointmentReminder NotificationType = "appointment_reminder"
	TypeMedicationReminder  NotificationType = "medication_reminder"
	TypeVaccinationReminder NotificationType = "vaccination_reminder"
)

// ErrInvalidNotificationType is returned when a caller supplies a type value
// outside the recognized set.
var ErrInvalidNotificationType = errors.New("invalid notification type")

// ParseNotificationType validates a caller-supplied notification type.
func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeAppointmentReminder:
		return TypeAppointmentReminder, nil
	case TypeMedicationReminder:
		return TypeMedicationReminder, nil
	case TypeVaccinationReminder:
		return TypeVaccinationReminder, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidNotificationType, s)
	}
}

// NotificationStatus is the delivery state of a notification.
type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending" // waiting to be sent
	StatusSent    NotificationStatus = "sent"    // delivered via at least one channel
	StatusFailed  NotificationStatus = "failed"  // transport attempt failed
	StatusSkipped NotificationStatus = "skipped" // no applicable channel, or channel disabled
)

// Notification represents a concrete, dispatchable message for a pet owner.
//
// A notification starts in pending status. Channel senders move it to sent
// or failed; the dispatcher marks it skipped when no channel applies.
// SentTime is set only when the notification was actually delivered.
type Notification struct {
	ID            uuid.UUID          `json:"id"`             // unique identifier for the notification
	Message       string             `json:"message"`        // rendered message content
	Type          NotificationType   `json:"type"`           // kind of reminder
	Status        NotificationStatus `json:"status"`         // current delivery state
	ScheduledTime time.Time          `json:"scheduled_time"` // when the notification should be sent
	SentTime      *time.Time         `json:"sent_time"`      // set when delivery succeeded
	Owner         Owner              `json:"owner"`          // recipient
	Pet           *Pet               `json:"pet,omitempty"`  // pet the reminder concerns, if any
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// MarkSent records a successful delivery at the given time.
func (n *Notification) MarkSent(at time.Time) {
	n.Status = StatusSent
	n.SentTime = &at
}
