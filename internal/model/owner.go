package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPreference is returned when a caller supplies a preference value
// outside the recognized set.
var ErrInvalidPreference = errors.New("invalid notification preference")

// Preference describes which channels an owner agreed to receive
// notifications on.
type Preference string

const (
	PreferenceEmail Preference = "email"
	PreferenceSMS   Preference = "sms"
	PreferenceBoth  Preference = "both"
	PreferenceNone  Preference = "none"
)

// ParsePreference validates a caller-supplied preference value.
func ParsePreference(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case PreferenceEmail:
		return PreferenceEmail, nil
	case PreferenceSMS:
		return PreferenceSMS, nil
	case PreferenceBoth:
		return PreferenceBoth, nil
	case PreferenceNone:
		return PreferenceNone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPreference, s)
	}
}

// IncludesEmail reports whether the preference allows email delivery.
func (p Preference) IncludesEmail() bool {
	return p == PreferenceEmail || p == PreferenceBoth
}

// IncludesSMS reports whether the preference allows SMS delivery.
func (p Preference) IncludesSMS() bool {
	return p == PreferenceSMS || p == PreferenceBoth
}

// Owner is the recipient of notifications. The notification core only reads
// owner state; contact endpoints and preference are managed by the owner API.
type Owner struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`      // may be empty
	Telephone  string     `json:"telephone"`  // may be empty
	Preference Preference `json:"preference"` // email, sms, both or none
}

// FullName returns the owner's display name.
func (o Owner) FullName() string {
	return o.FirstName + " " + o.LastName
}

// Pet is a read-only reference attached to notifications and schedules.
type Pet struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"` // kind of animal, e.g. "dog"
	BirthDate *time.Time `json:"birth_date"`
}

// Visit is the triggering event for one-shot reminder schedules.
type Visit struct {
	ID          uuid.UUID  `json:"id"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
}
