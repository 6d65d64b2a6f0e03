// Package scheduler owns the periodic sweeps that drive notification
// delivery: one frequent sweep that fires due schedules and one slow sweep
// that retries notifications stuck in pending.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/petclinic/reminder-notifier/internal/model"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler/mock.go -package=mocks

type scheduleStore interface {
	FindActiveSchedulesDue(ctx context.Context, now time.Time) ([]model.Schedule, error)
	UpdateSchedule(ctx context.Context, s *model.Schedule) error
}

type notificationStore interface {
	CreateNotification(ctx context.Context, n *model.Notification) (uuid.UUID, error)
	FindPendingNotifications(ctx context.Context, now time.Time) ([]model.Notification, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, n *model.Notification) bool
}

type renderer interface {
	RenderSchedule(s *model.Schedule) string
}

// Scheduler runs the due-schedule sweep and the pending-retry sweep as two
// independent tickers. The store is the single source of truth between
// sweeps; no notification or schedule state is held across ticks.
type Scheduler struct {
	schedules     scheduleStore
	notifications notificationStore
	dispatcher    dispatcher
	renderer      renderer
	sweepEvery    time.Duration
	retryEvery    time.Duration
}

// New creates a Scheduler. sweepEvery drives the due-schedule sweep,
// retryEvery the pending-retry sweep.
func New(
	schedules scheduleStore,
	notifications notificationStore,
	d dispatcher,
	r renderer,
	sweepEvery, retryEvery time.Duration,
) *Scheduler {
	return &Scheduler{
		schedules:     schedules,
		notifications: notifications,
		dispatcher:    d,
		renderer:      r,
		sweepEvery:    sweepEvery,
		retryEvery:    retryEvery,
	}
}

// Run starts both sweeps and blocks until the context is cancelled.
// An in-flight sweep iteration is allowed to finish before Run returns, so
// shutdown never leaves a half-written dispatch status behind.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(s.sweepEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.ProcessDueSchedules(ctx, time.Now())
			}
		}
	}()

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(s.retryEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RetryPendingNotifications(ctx, time.Now())
			}
		}
	}()

	wg.Wait()
	zlog.Logger.Info().Msg("scheduler stopped")
}

// ProcessDueSchedules finds every enabled schedule whose firing time has
// passed, materializes a notification from it, and dispatches it. A failure
// in one schedule is logged and never aborts the sweep.
func (s *Scheduler) ProcessDueSchedules(ctx context.Context, now time.Time) {
	zlog.Logger.Debug().Time("now", now).Msg("running scheduled notification check")

	dueSchedules, err := s.schedules.FindActiveSchedulesDue(ctx, now)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to find due schedules")
		return
	}

	if len(dueSchedules) == 0 {
		zlog.Logger.Debug().Msg("no notification schedules due for processing")
		return
	}

	zlog.Logger.Info().Int("count", len(dueSchedules)).Msg("found notification schedules due for processing")

	for i := range dueSchedules {
		schedule := &dueSchedules[i]

		if err := s.processSchedule(ctx, schedule); err != nil {
			zlog.Logger.Error().Err(err).Str("schedule_id", schedule.ID.String()).Msg("failed to process notification schedule")
		}
	}
}

// processSchedule handles a single due schedule: generate, render, persist,
// dispatch, and consume the schedule if it is one-shot.
func (s *Scheduler) processSchedule(ctx context.Context, schedule *model.Schedule) (err error) {
	// One corrupt record must not halt the batch, so a panic inside a
	// single item is contained here.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing schedule: %v", r)
		}
	}()

	notification := schedule.GenerateNotification()
	notification.Message = s.renderer.RenderSchedule(schedule)

	if _, err := s.notifications.CreateNotification(ctx, &notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	zlog.Logger.Debug().
		Str("notification_id", notification.ID.String()).
		Str("schedule_id", schedule.ID.String()).
		Msg("created notification from schedule")

	s.dispatcher.Dispatch(ctx, &notification)

	// Visit-bound schedules fire exactly once. Recurring schedules stay
	// enabled; they re-fire only when a caller advances their time.
	if schedule.OneShot() {
		schedule.Enabled = false
		if err := s.schedules.UpdateSchedule(ctx, schedule); err != nil {
			return fmt.Errorf("disable schedule: %w", err)
		}
	}

	zlog.Logger.Info().
		Str("schedule_id", schedule.ID.String()).
		Str("notification_id", notification.ID.String()).
		Str("status", string(notification.Status)).
		Msg("processed notification schedule")

	return nil
}

// RetryPendingNotifications re-dispatches notifications still pending past
// their scheduled time, without regenerating the message. Sent, failed and
// skipped notifications are out of scope here.
func (s *Scheduler) RetryPendingNotifications(ctx context.Context, now time.Time) {
	zlog.Logger.Debug().Msg("checking for pending notifications to retry")

	pending, err := s.notifications.FindPendingNotifications(ctx, now)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to find pending notifications")
		return
	}

	if len(pending) == 0 {
		return
	}

	zlog.Logger.Info().Int("count", len(pending)).Msg("found pending notifications to retry")

	for i := range pending {
		n := &pending[i]

		func() {
			defer func() {
				if r := recover(); r != nil {
					zlog.Logger.Error().
						Interface("panic", r).
						Str("notification_id", n.ID.String()).
						Msg("failed to retry pending notification")
				}
			}()

			s.dispatcher.Dispatch(ctx, n)
		}()
	}
}
