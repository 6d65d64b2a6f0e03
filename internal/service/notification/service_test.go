package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/petclinic/reminder-notifier/internal/mocks/service/notification"
	"github.com/petclinic/reminder-notifier/internal/model"
)

type serviceMocks struct {
	notifications *mocks.MocknotificationRepository
	schedules     *mocks.MockscheduleRepository
	owners        *mocks.MockownerRepository
	dispatcher    *mocks.Mockdispatcher
	renderer      *mocks.Mockrenderer
	cache         *mocks.Mockcache
}

func newTestService(ctrl *gomock.Controller) (*Service, serviceMocks) {
	m := serviceMocks{
		notifications: mocks.NewMocknotificationRepository(ctrl),
		schedules:     mocks.NewMockscheduleRepository(ctrl),
		owners:        mocks.NewMockownerRepository(ctrl),
		dispatcher:    mocks.NewMockdispatcher(ctrl),
		renderer:      mocks.NewMockrenderer(ctrl),
		cache:         mocks.NewMockcache(ctrl),
	}

	svc := NewService(m.notifications, m.schedules, m.owners, m.dispatcher, m.renderer, m.cache)

	return svc, m
}

var testStrategy = retry.Strategy{Attempts: 1, Delay: time.Millisecond}

func testOwner() model.Owner {
	return model.Owner{
		ID:         uuid.New(),
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		Telephone:  "5551234567",
		Preference: model.PreferenceEmail,
	}
}

func TestService_CreateSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	owner := testOwner()
	schedule := model.Schedule{
		MessageTemplate: "Dear {ownerFirstName}, reminder.",
		Type:            model.TypeAppointmentReminder,
		ScheduledTime:   time.Now().Add(24 * time.Hour),
		Enabled:         true,
		Owner:           model.Owner{ID: owner.ID},
	}

	m.owners.EXPECT().GetOwnerByID(gomock.Any(), owner.ID).Return(owner, nil)
	m.schedules.EXPECT().CreateSchedule(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *model.Schedule) (uuid.UUID, error) {
			assert.NotEqual(t, uuid.Nil, s.ID)
			assert.Equal(t, owner, s.Owner)
			assert.Equal(t, "Dear {ownerFirstName}, reminder.", s.MessageTemplate)
			return s.ID, nil
		},
	)

	id, err := svc.CreateSchedule(context.Background(), schedule)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestService_CreateSchedule_EmptyTemplateUsesDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	owner := testOwner()
	schedule := model.Schedule{
		Type:    model.TypeVaccinationReminder,
		Enabled: true,
		Owner:   model.Owner{ID: owner.ID},
	}

	m.owners.EXPECT().GetOwnerByID(gomock.Any(), owner.ID).Return(owner, nil)
	m.renderer.EXPECT().LoadTemplate(model.TypeVaccinationReminder).Return("Dear {ownerFirstName}, vaccination due.")
	m.schedules.EXPECT().CreateSchedule(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *model.Schedule) (uuid.UUID, error) {
			assert.Equal(t, "Dear {ownerFirstName}, vaccination due.", s.MessageTemplate)
			return s.ID, nil
		},
	)

	_, err := svc.CreateSchedule(context.Background(), schedule)
	assert.NoError(t, err)
}

func TestService_CreateSchedule_UnknownOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	ownerID := uuid.New()
	ownerErr := errors.New("owner not found")

	m.owners.EXPECT().GetOwnerByID(gomock.Any(), ownerID).Return(model.Owner{}, ownerErr)

	_, err := svc.CreateSchedule(context.Background(), model.Schedule{Owner: model.Owner{ID: ownerID}})
	assert.ErrorIs(t, err, ownerErr)
}

func TestService_GetNotificationStatusByID_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	id := uuid.New()
	m.cache.EXPECT().GetWithRetry(gomock.Any(), testStrategy, id.String()).Return("sent", nil)

	status, err := svc.GetNotificationStatusByID(context.Background(), testStrategy, id)
	require.NoError(t, err)
	assert.Equal(t, "sent", status)
}

func TestService_GetNotificationStatusByID_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	id := uuid.New()
	m.cache.EXPECT().GetWithRetry(gomock.Any(), testStrategy, id.String()).Return("", redis.Nil)
	m.notifications.EXPECT().GetNotificationStatusByID(gomock.Any(), id).Return("pending", nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), testStrategy, id.String(), "pending").Return(nil)

	status, err := svc.GetNotificationStatusByID(context.Background(), testStrategy, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", status)
}

func TestService_GetNotificationStatusByID_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	id := uuid.New()
	repoErr := errors.New("db down")

	m.cache.EXPECT().GetWithRetry(gomock.Any(), testStrategy, id.String()).Return("", redis.Nil)
	m.notifications.EXPECT().GetNotificationStatusByID(gomock.Any(), id).Return("", repoErr)

	_, err := svc.GetNotificationStatusByID(context.Background(), testStrategy, id)
	assert.ErrorIs(t, err, repoErr)
}

func TestService_GetNotifications_ByOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	ownerID := uuid.New()
	expected := []model.Notification{{ID: uuid.New(), Status: model.StatusSent}}

	m.notifications.EXPECT().GetNotificationsByOwner(gomock.Any(), ownerID).Return(expected, nil)

	got, err := svc.GetNotifications(context.Background(), &ownerID)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestService_GetNotifications_All(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	expected := []model.Notification{{ID: uuid.New()}, {ID: uuid.New()}}

	m.notifications.EXPECT().GetAllNotifications(gomock.Any()).Return(expected, nil)

	got, err := svc.GetNotifications(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestService_UpdatePreference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	owner := testOwner()
	owner.Preference = model.PreferenceSMS

	m.owners.EXPECT().UpdatePreference(gomock.Any(), owner.ID, model.PreferenceSMS).Return(nil)
	m.owners.EXPECT().GetOwnerByID(gomock.Any(), owner.ID).Return(owner, nil)

	got, err := svc.UpdatePreference(context.Background(), owner.ID, "SMS")
	require.NoError(t, err)
	assert.Equal(t, model.PreferenceSMS, got.Preference)
}

func TestService_UpdatePreference_InvalidValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(ctrl)

	_, err := svc.UpdatePreference(context.Background(), uuid.New(), "carrier pigeon")
	assert.ErrorIs(t, err, model.ErrInvalidPreference)
}

func TestService_SendTestNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	owner := testOwner()

	m.owners.EXPECT().GetOwnerByID(gomock.Any(), owner.ID).Return(owner, nil)
	m.notifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) (uuid.UUID, error) {
			assert.Equal(t, model.StatusPending, n.Status)
			assert.Equal(t, defaultTestMessage, n.Message)
			return n.ID, nil
		},
	)
	m.renderer.EXPECT().RenderNotification(gomock.Any()).Return(defaultTestMessage)
	m.dispatcher.EXPECT().DispatchImmediately(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) bool {
			n.MarkSent(time.Now())
			return true
		},
	)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), testStrategy, gomock.Any(), "sent").Return(nil)

	result, err := svc.SendTestNotification(context.Background(), testStrategy, owner.ID, nil, "")
	require.NoError(t, err)
	assert.True(t, result.Sent)
	assert.Equal(t, model.StatusSent, result.Status)
	assert.Equal(t, owner.ID, result.OwnerID)
	assert.Equal(t, owner.Preference, result.Preference)
}

func TestService_SendTestNotification_WithPet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	owner := testOwner()
	pet := model.Pet{ID: uuid.New(), Name: "Rex", Type: "dog"}

	m.owners.EXPECT().GetOwnerByID(gomock.Any(), owner.ID).Return(owner, nil)
	m.owners.EXPECT().GetPetByID(gomock.Any(), pet.ID).Return(pet, nil)
	m.notifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) (uuid.UUID, error) {
			require.NotNil(t, n.Pet)
			assert.Equal(t, "Rex", n.Pet.Name)
			return n.ID, nil
		},
	)
	m.renderer.EXPECT().RenderNotification(gomock.Any()).Return("Hello Jane, about Rex.")
	m.dispatcher.EXPECT().DispatchImmediately(gomock.Any(), gomock.Any()).Return(true)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), testStrategy, gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.SendTestNotification(context.Background(), testStrategy, owner.ID, &pet.ID, "Custom {petName} message")
	require.NoError(t, err)
	assert.True(t, result.Sent)
}

func TestService_SendTestNotification_OptedOutOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	owner := testOwner()
	owner.Preference = model.PreferenceNone

	m.owners.EXPECT().GetOwnerByID(gomock.Any(), owner.ID).Return(owner, nil)
	m.notifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
	m.renderer.EXPECT().RenderNotification(gomock.Any()).Return(defaultTestMessage)
	m.dispatcher.EXPECT().DispatchImmediately(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) bool {
			n.Status = model.StatusSkipped
			return false
		},
	)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), testStrategy, gomock.Any(), "skipped").Return(nil)

	result, err := svc.SendTestNotification(context.Background(), testStrategy, owner.ID, nil, "")
	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Equal(t, model.StatusSkipped, result.Status)
}
