package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_SetVisit_DerivesScheduledTime(t *testing.T) {
	visitDate := time.Date(2026, time.September, 14, 15, 30, 0, 0, time.UTC)
	days := 2

	s := Schedule{DaysBefore: &days}
	s.SetVisit(&Visit{ID: uuid.New(), Date: &visitDate})

	// Start of the visit day minus the offset, time of day discarded.
	assert.Equal(t, time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC), s.ScheduledTime)
}

func TestSchedule_SetDaysBefore_RecomputesWithVisit(t *testing.T) {
	visitDate := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

	s := Schedule{Visit: &Visit{ID: uuid.New(), Date: &visitDate}}
	s.SetDaysBefore(7)

	assert.Equal(t, time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC), s.ScheduledTime)
}

func TestSchedule_SetDaysBefore_NoVisitIsNoOp(t *testing.T) {
	s := Schedule{}
	s.SetDaysBefore(3)

	assert.True(t, s.ScheduledTime.IsZero())
	require.NotNil(t, s.DaysBefore)
	assert.Equal(t, 3, *s.DaysBefore)
}

func TestSchedule_OneShot(t *testing.T) {
	assert.False(t, (&Schedule{}).OneShot())
	assert.True(t, (&Schedule{Visit: &Visit{ID: uuid.New()}}).OneShot())
}

func TestSchedule_GenerateNotification(t *testing.T) {
	s := Schedule{
		ID:              uuid.New(),
		MessageTemplate: "Dear {ownerFirstName}, reminder.",
		Type:            TypeMedicationReminder,
		ScheduledTime:   time.Now(),
		Owner:           Owner{ID: uuid.New(), FirstName: "Jane"},
		Pet:             &Pet{ID: uuid.New(), Name: "Rex"},
	}

	n := s.GenerateNotification()

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.Equal(t, s.MessageTemplate, n.Message)
	assert.Equal(t, s.Type, n.Type)
	assert.Equal(t, StatusPending, n.Status)
	assert.Equal(t, s.ScheduledTime, n.ScheduledTime)
	assert.Equal(t, s.Owner, n.Owner)
	assert.Equal(t, s.Pet, n.Pet)
	assert.Nil(t, n.SentTime)
}

func TestNotification_MarkSent(t *testing.T) {
	n := Notification{Status: StatusPending}
	at := time.Now()

	n.MarkSent(at)

	assert.Equal(t, StatusSent, n.Status)
	require.NotNil(t, n.SentTime)
	assert.True(t, at.Equal(*n.SentTime))
}

func TestParseNotificationType(t *testing.T) {
	for _, s := range []string{"appointment_reminder", "APPOINTMENT_REMINDER", " appointment_reminder "} {
		got, err := ParseNotificationType(s)
		require.NoError(t, err)
		assert.Equal(t, TypeAppointmentReminder, got)
	}

	_, err := ParseNotificationType("birthday_party")
	assert.ErrorIs(t, err, ErrInvalidNotificationType)
}

func TestParsePreference(t *testing.T) {
	cases := map[string]Preference{
		"email": PreferenceEmail,
		"SMS":   PreferenceSMS,
		"Both":  PreferenceBoth,
		"none":  PreferenceNone,
	}

	for in, want := range cases {
		got, err := ParsePreference(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParsePreference("carrier pigeon")
	assert.ErrorIs(t, err, ErrInvalidPreference)
}

func TestPreference_ChannelMembership(t *testing.T) {
	assert.True(t, PreferenceEmail.IncludesEmail())
	assert.False(t, PreferenceEmail.IncludesSMS())
	assert.True(t, PreferenceSMS.IncludesSMS())
	assert.False(t, PreferenceSMS.IncludesEmail())
	assert.True(t, PreferenceBoth.IncludesEmail())
	assert.True(t, PreferenceBoth.IncludesSMS())
	assert.False(t, PreferenceNone.IncludesEmail())
	assert.False(t, PreferenceNone.IncludesSMS())
}
