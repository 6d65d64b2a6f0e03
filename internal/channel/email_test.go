package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocks "github.com/petclinic/reminder-notifier/internal/mocks/channel"
	"github.com/petclinic/reminder-notifier/internal/model"
)

func emailNotification(pref model.Preference) *model.Notification {
	return &model.Notification{
		ID:      uuid.New(),
		Message: "Dear Jane, see you soon.",
		Type:    model.TypeAppointmentReminder,
		Status:  model.StatusPending,
		Owner: model.Owner{
			ID:         uuid.New(),
			FirstName:  "Jane",
			Email:      "jane@example.com",
			Preference: pref,
		},
	}
}

func TestEmailSender_CanHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewEmailSender(mocks.NewMockemailClient(ctrl))

	assert.True(t, s.CanHandle(emailNotification(model.PreferenceEmail)))
	assert.True(t, s.CanHandle(emailNotification(model.PreferenceBoth)))
	assert.False(t, s.CanHandle(emailNotification(model.PreferenceSMS)))
	assert.False(t, s.CanHandle(emailNotification(model.PreferenceNone)))

	noEmail := emailNotification(model.PreferenceEmail)
	noEmail.Owner.Email = ""
	assert.False(t, s.CanHandle(noEmail))
}

func TestEmailSender_Send_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockemailClient(ctrl)
	s := NewEmailSender(mockClient)

	n := emailNotification(model.PreferenceEmail)

	mockClient.EXPECT().
		Send(n.Owner.Email, "Pet Clinic: Appointment Reminder", n.Message).
		Return(nil)

	sent := s.Send(context.Background(), n)

	assert.True(t, sent)
	assert.Equal(t, model.StatusSent, n.Status)
	require.NotNil(t, n.SentTime)
}

func TestEmailSender_Send_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockemailClient(ctrl)
	s := NewEmailSender(mockClient)

	n := emailNotification(model.PreferenceBoth)

	mockClient.EXPECT().
		Send(n.Owner.Email, gomock.Any(), n.Message).
		Return(errors.New("smtp connection refused"))

	sent := s.Send(context.Background(), n)

	assert.False(t, sent)
	assert.Equal(t, model.StatusFailed, n.Status)
	assert.Nil(t, n.SentTime)
}

func TestEmailSender_Send_NotHandled_NoTransportCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockemailClient(ctrl)
	s := NewEmailSender(mockClient)

	n := emailNotification(model.PreferenceSMS)

	sent := s.Send(context.Background(), n)

	assert.False(t, sent)
	assert.Equal(t, model.StatusPending, n.Status)
}

func TestSubjectForType(t *testing.T) {
	assert.Equal(t, "Pet Clinic: Appointment Reminder", subjectForType(model.TypeAppointmentReminder))
	assert.Equal(t, "Pet Clinic: Medication Reminder", subjectForType(model.TypeMedicationReminder))
	assert.Equal(t, "Pet Clinic: Vaccination Reminder", subjectForType(model.TypeVaccinationReminder))
	assert.Equal(t, "Pet Clinic Notification", subjectForType(model.NotificationType("something_else")))
}
