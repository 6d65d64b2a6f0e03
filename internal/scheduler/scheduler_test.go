package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	mocks "github.com/petclinic/reminder-notifier/internal/mocks/scheduler"
	"github.com/petclinic/reminder-notifier/internal/model"
)

func dueSchedule(t *testing.T, oneShot bool) model.Schedule {
	t.Helper()

	s := model.Schedule{
		ID:              uuid.New(),
		MessageTemplate: "Dear {ownerFirstName}, reminder.",
		Type:            model.TypeAppointmentReminder,
		ScheduledTime:   time.Now().Add(-time.Minute),
		Enabled:         true,
		Owner: model.Owner{
			ID:         uuid.New(),
			FirstName:  "Jane",
			Email:      "jane@example.com",
			Preference: model.PreferenceEmail,
		},
	}

	if oneShot {
		visitDate := time.Now().Add(48 * time.Hour)
		s.Visit = &model.Visit{ID: uuid.New(), Date: &visitDate}
	}

	return s
}

func newTestScheduler(
	schedules *mocks.MockscheduleStore,
	notifications *mocks.MocknotificationStore,
	d *mocks.Mockdispatcher,
	r *mocks.Mockrenderer,
) *Scheduler {
	return New(schedules, notifications, d, r, time.Minute, time.Hour)
}

func TestScheduler_ProcessDueSchedules_DispatchesAndKeepsRecurringEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSchedules := mocks.NewMockscheduleStore(ctrl)
	mockNotifications := mocks.NewMocknotificationStore(ctrl)
	mockDispatcher := mocks.NewMockdispatcher(ctrl)
	mockRenderer := mocks.NewMockrenderer(ctrl)

	s := newTestScheduler(mockSchedules, mockNotifications, mockDispatcher, mockRenderer)

	schedule := dueSchedule(t, false)
	now := time.Now()

	mockSchedules.EXPECT().FindActiveSchedulesDue(gomock.Any(), now).Return([]model.Schedule{schedule}, nil)
	mockRenderer.EXPECT().RenderSchedule(gomock.Any()).Return("Dear Jane, reminder.")
	mockNotifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) (uuid.UUID, error) {
			assert.Equal(t, model.StatusPending, n.Status)
			assert.Equal(t, "Dear Jane, reminder.", n.Message)
			assert.Equal(t, schedule.Owner.ID, n.Owner.ID)
			return n.ID, nil
		},
	)
	mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(true)
	// Recurring schedules are never written back by the sweep.

	s.ProcessDueSchedules(context.Background(), now)
}

func TestScheduler_ProcessDueSchedules_OneShotDisabledAfterFiring(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSchedules := mocks.NewMockscheduleStore(ctrl)
	mockNotifications := mocks.NewMocknotificationStore(ctrl)
	mockDispatcher := mocks.NewMockdispatcher(ctrl)
	mockRenderer := mocks.NewMockrenderer(ctrl)

	s := newTestScheduler(mockSchedules, mockNotifications, mockDispatcher, mockRenderer)

	schedule := dueSchedule(t, true)
	now := time.Now()

	mockSchedules.EXPECT().FindActiveSchedulesDue(gomock.Any(), now).Return([]model.Schedule{schedule}, nil)
	mockRenderer.EXPECT().RenderSchedule(gomock.Any()).Return("rendered")
	mockNotifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
	mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(true)
	mockSchedules.EXPECT().UpdateSchedule(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, updated *model.Schedule) error {
			assert.False(t, updated.Enabled)
			return nil
		},
	)

	s.ProcessDueSchedules(context.Background(), now)
}

func TestScheduler_ProcessDueSchedules_OneShotDisabledEvenWhenDispatchFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSchedules := mocks.NewMockscheduleStore(ctrl)
	mockNotifications := mocks.NewMocknotificationStore(ctrl)
	mockDispatcher := mocks.NewMockdispatcher(ctrl)
	mockRenderer := mocks.NewMockrenderer(ctrl)

	s := newTestScheduler(mockSchedules, mockNotifications, mockDispatcher, mockRenderer)

	schedule := dueSchedule(t, true)
	now := time.Now()

	mockSchedules.EXPECT().FindActiveSchedulesDue(gomock.Any(), now).Return([]model.Schedule{schedule}, nil)
	mockRenderer.EXPECT().RenderSchedule(gomock.Any()).Return("rendered")
	mockNotifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
	mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(false)
	mockSchedules.EXPECT().UpdateSchedule(gomock.Any(), gomock.Any()).Return(nil)

	s.ProcessDueSchedules(context.Background(), now)
}

func TestScheduler_ProcessDueSchedules_OneFailureDoesNotAbortSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSchedules := mocks.NewMockscheduleStore(ctrl)
	mockNotifications := mocks.NewMocknotificationStore(ctrl)
	mockDispatcher := mocks.NewMockdispatcher(ctrl)
	mockRenderer := mocks.NewMockrenderer(ctrl)

	s := newTestScheduler(mockSchedules, mockNotifications, mockDispatcher, mockRenderer)

	first := dueSchedule(t, false)
	second := dueSchedule(t, false)
	now := time.Now()

	mockSchedules.EXPECT().FindActiveSchedulesDue(gomock.Any(), now).Return([]model.Schedule{first, second}, nil)
	mockRenderer.EXPECT().RenderSchedule(gomock.Any()).Return("rendered").Times(2)

	gomock.InOrder(
		mockNotifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("insert failed")),
		mockNotifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(uuid.New(), nil),
	)
	mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(true).Times(1)

	s.ProcessDueSchedules(context.Background(), now)
}

func TestScheduler_ProcessDueSchedules_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSchedules := mocks.NewMockscheduleStore(ctrl)
	mockNotifications := mocks.NewMocknotificationStore(ctrl)
	mockDispatcher := mocks.NewMockdispatcher(ctrl)
	mockRenderer := mocks.NewMockrenderer(ctrl)

	s := newTestScheduler(mockSchedules, mockNotifications, mockDispatcher, mockRenderer)

	now := time.Now()
	mockSchedules.EXPECT().FindActiveSchedulesDue(gomock.Any(), now).Return(nil, errors.New("db down"))

	s.ProcessDueSchedules(context.Background(), now)
}

func TestScheduler_RetryPendingNotifications_RedispatchesWithoutRegenerating(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSchedules := mocks.NewMockscheduleStore(ctrl)
	mockNotifications := mocks.NewMocknotificationStore(ctrl)
	mockDispatcher := mocks.NewMockdispatcher(ctrl)
	mockRenderer := mocks.NewMockrenderer(ctrl)

	s := newTestScheduler(mockSchedules, mockNotifications, mockDispatcher, mockRenderer)

	now := time.Now()
	pending := []model.Notification{
		{ID: uuid.New(), Message: "already rendered", Status: model.StatusPending, ScheduledTime: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), Message: "also rendered", Status: model.StatusPending, ScheduledTime: now.Add(-time.Hour)},
	}

	mockNotifications.EXPECT().FindPendingNotifications(gomock.Any(), now).Return(pending, nil)
	mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) bool {
			assert.Contains(t, []string{"already rendered", "also rendered"}, n.Message)
			return true
		},
	).Times(2)

	s.RetryPendingNotifications(context.Background(), now)
}

func TestScheduler_RetryPendingNotifications_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSchedules := mocks.NewMockscheduleStore(ctrl)
	mockNotifications := mocks.NewMocknotificationStore(ctrl)
	mockDispatcher := mocks.NewMockdispatcher(ctrl)
	mockRenderer := mocks.NewMockrenderer(ctrl)

	s := newTestScheduler(mockSchedules, mockNotifications, mockDispatcher, mockRenderer)

	now := time.Now()
	mockNotifications.EXPECT().FindPendingNotifications(gomock.Any(), now).Return(nil, nil)

	s.RetryPendingNotifications(context.Background(), now)
}

func TestScheduler_Run_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSchedules := mocks.NewMockscheduleStore(ctrl)
	mockNotifications := mocks.NewMocknotificationStore(ctrl)
	mockDispatcher := mocks.NewMockdispatcher(ctrl)
	mockRenderer := mocks.NewMockrenderer(ctrl)

	s := New(mockSchedules, mockNotifications, mockDispatcher, mockRenderer, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
