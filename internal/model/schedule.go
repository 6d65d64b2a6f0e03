package model

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a plan that produces notifications. It differs from a
// Notification in that it represents intent: the message is still a template
// and nothing has been dispatched yet.
//
// A schedule tied to a visit is one-shot: the scheduler disables it after it
// fires once. A schedule without a visit stays enabled and fires again on
// every sweep while it is due.
type Schedule struct {
	ID              uuid.UUID        `json:"id"`
	MessageTemplate string           `json:"message_template"` // text with {placeholder} tokens
	Type            NotificationType `json:"type"`
	ScheduledTime   time.Time        `json:"scheduled_time"` // when the notification should fire
	DaysBefore      *int             `json:"days_before"`    // offset from the visit date, if visit-bound
	Enabled         bool             `json:"enabled"`
	Owner           Owner            `json:"owner"`
	Pet             *Pet             `json:"pet,omitempty"`
	Visit           *Visit           `json:"visit,omitempty"` // triggering event for one-shot schedules
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// SetDaysBefore updates the offset and recomputes the firing time when the
// visit date is known.
func (s *Schedule) SetDaysBefore(days int) {
	s.DaysBefore = &days
	s.recomputeScheduledTime()
}

// SetVisit attaches a triggering visit and recomputes the firing time when
// the offset is known.
func (s *Schedule) SetVisit(v *Visit) {
	s.Visit = v
	s.recomputeScheduledTime()
}

// recomputeScheduledTime derives the firing time as the start of the visit
// day minus DaysBefore days. It is a no-op until both the visit date and the
// offset are set.
func (s *Schedule) recomputeScheduledTime() {
	if s.Visit == nil || s.Visit.Date == nil || s.DaysBefore == nil {
		return
	}

	d := *s.Visit.Date
	startOfDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	s.ScheduledTime = startOfDay.AddDate(0, 0, -*s.DaysBefore)
}

// OneShot reports whether the schedule is consumed after its first firing.
func (s *Schedule) OneShot() bool {
	return s.Visit != nil
}

// GenerateNotification materializes a pending notification from this
// schedule. The message carries the raw template text; rendering happens
// separately. Pure construction, no side effects.
func (s *Schedule) GenerateNotification() Notification {
	return Notification{
		ID:            uuid.New(),
		Message:       s.MessageTemplate,
		Type:          s.Type,
		Status:        StatusPending,
		ScheduledTime: s.ScheduledTime,
		Owner:         s.Owner,
		Pet:           s.Pet,
	}
}
