package dto

// CreateScheduleRequest is the JSON body for creating a notification
// schedule. A schedule is either explicit (scheduled_time set) or
// visit-bound (visit_id, visit_date and days_before set), in which case the
// firing time is derived from the visit date.
type CreateScheduleRequest struct {
	MessageTemplate string `json:"message_template"`
	Type            string `json:"type" validate:"required"`
	ScheduledTime   string `json:"scheduled_time"`
	OwnerID         string `json:"owner_id" validate:"required,uuid"`
	PetID           string `json:"pet_id" validate:"omitempty,uuid"`
	VisitID         string `json:"visit_id" validate:"omitempty,uuid"`
	VisitDate       string `json:"visit_date"`
	DaysBefore      *int   `json:"days_before"`
}

// UpdatePreferenceRequest is the JSON body for changing an owner's channel
// preference.
type UpdatePreferenceRequest struct {
	Preference string `json:"preference" validate:"required"`
}

// TestNotificationRequest is the JSON body for sending a test notification.
type TestNotificationRequest struct {
	OwnerID string `json:"owner_id" validate:"required,uuid"`
	PetID   string `json:"pet_id" validate:"omitempty,uuid"`
	Message string `json:"message"`
}
