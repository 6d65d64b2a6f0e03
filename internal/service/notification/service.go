package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/petclinic/reminder-notifier/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

const defaultTestMessage = "This is a test notification from the Pet Clinic."

type notificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) (uuid.UUID, error)
	GetNotificationStatusByID(ctx context.Context, id uuid.UUID) (string, error)
	GetNotificationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Notification, error)
	GetAllNotifications(ctx context.Context) ([]model.Notification, error)
}

type scheduleRepository interface {
	CreateSchedule(ctx context.Context, s *model.Schedule) (uuid.UUID, error)
}

type ownerRepository interface {
	GetOwnerByID(ctx context.Context, id uuid.UUID) (model.Owner, error)
	GetPetByID(ctx context.Context, id uuid.UUID) (model.Pet, error)
	UpdatePreference(ctx context.Context, id uuid.UUID, pref model.Preference) error
}

type dispatcher interface {
	DispatchImmediately(ctx context.Context, n *model.Notification) bool
}

type renderer interface {
	RenderNotification(n *model.Notification) string
	LoadTemplate(t model.NotificationType) string
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// TestSendResult reports the outcome of an on-demand test notification.
type TestSendResult struct {
	NotificationID uuid.UUID                `json:"notification_id"`
	OwnerID        uuid.UUID                `json:"owner_id"`
	Status         model.NotificationStatus `json:"status"`
	Sent           bool                     `json:"sent"`
	Preference     model.Preference         `json:"preference"`
}

// Service is the application-facing surface of the notification system:
// schedule creation, status lookups, preference updates and on-demand test
// sends. The periodic sweeps talk to the repositories directly.
type Service struct {
	notifications notificationRepository
	schedules     scheduleRepository
	owners        ownerRepository
	dispatcher    dispatcher
	renderer      renderer
	cache         cache
}

// NewService creates a new notification service.
func NewService(
	notifications notificationRepository,
	schedules scheduleRepository,
	owners ownerRepository,
	d dispatcher,
	r renderer,
	c cache,
) *Service {
	return &Service{
		notifications: notifications,
		schedules:     schedules,
		owners:        owners,
		dispatcher:    d,
		renderer:      r,
		cache:         c,
	}
}

// CreateSchedule validates the owner reference and stores a new schedule.
// An empty message template falls back to the bundled template resource for
// the schedule's type.
func (s *Service) CreateSchedule(ctx context.Context, schedule model.Schedule) (uuid.UUID, error) {
	owner, err := s.owners.GetOwnerByID(ctx, schedule.Owner.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve owner: %w", err)
	}
	schedule.Owner = owner

	if schedule.MessageTemplate == "" {
		schedule.MessageTemplate = s.renderer.LoadTemplate(schedule.Type)
	}

	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}

	id, err := s.schedules.CreateSchedule(ctx, &schedule)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create schedule: %w", err)
	}

	return id, nil
}

// GetNotificationStatusByID returns the notification status, consulting the
// cache first and falling back to the repository on a miss.
func (s *Service) GetNotificationStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status from cache")
	}

	if errors.Is(err, redis.Nil) {
		status, err = s.notifications.GetNotificationStatusByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("get notification status: %w", err)
		}

		err = s.cache.SetWithRetry(ctx, strategy, id.String(), status)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
		}
	}

	return status, nil
}

// GetNotifications lists notifications, optionally filtered by owner.
func (s *Service) GetNotifications(ctx context.Context, ownerID *uuid.UUID) ([]model.Notification, error) {
	if ownerID != nil {
		notifications, err := s.notifications.GetNotificationsByOwner(ctx, *ownerID)
		if err != nil {
			return nil, fmt.Errorf("get notifications by owner: %w", err)
		}

		return notifications, nil
	}

	notifications, err := s.notifications.GetAllNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all notifications: %w", err)
	}

	return notifications, nil
}

// UpdatePreference validates and stores a new channel preference for an
// owner. An unrecognized value is rejected with model.ErrInvalidPreference.
func (s *Service) UpdatePreference(ctx context.Context, ownerID uuid.UUID, preference string) (model.Owner, error) {
	pref, err := model.ParsePreference(preference)
	if err != nil {
		return model.Owner{}, err
	}

	if err := s.owners.UpdatePreference(ctx, ownerID, pref); err != nil {
		return model.Owner{}, fmt.Errorf("update preference: %w", err)
	}

	owner, err := s.owners.GetOwnerByID(ctx, ownerID)
	if err != nil {
		return model.Owner{}, fmt.Errorf("get owner: %w", err)
	}

	zlog.Logger.Info().
		Str("owner_id", ownerID.String()).
		Str("preference", string(pref)).
		Msg("updated notification preference for owner")

	return owner, nil
}

// SendTestNotification builds a pending notification for the owner, renders
// it, and routes it immediately through the dispatcher. The dispatch contract
// applies unchanged, so an owner who opted out ends up with a skipped
// notification.
func (s *Service) SendTestNotification(ctx context.Context, strategy retry.Strategy, ownerID uuid.UUID, petID *uuid.UUID, message string) (TestSendResult, error) {
	owner, err := s.owners.GetOwnerByID(ctx, ownerID)
	if err != nil {
		return TestSendResult{}, fmt.Errorf("resolve owner: %w", err)
	}

	if message == "" {
		message = defaultTestMessage
	}

	n := model.Notification{
		ID:            uuid.New(),
		Message:       message,
		Type:          model.TypeAppointmentReminder,
		Status:        model.StatusPending,
		ScheduledTime: time.Now(),
		Owner:         owner,
	}

	if petID != nil {
		pet, err := s.owners.GetPetByID(ctx, *petID)
		if err != nil {
			return TestSendResult{}, fmt.Errorf("resolve pet: %w", err)
		}
		n.Pet = &pet
	}

	if _, err := s.notifications.CreateNotification(ctx, &n); err != nil {
		return TestSendResult{}, fmt.Errorf("create notification: %w", err)
	}

	n.Message = s.renderer.RenderNotification(&n)

	sent := s.dispatcher.DispatchImmediately(ctx, &n)

	if err := s.cache.SetWithRetry(ctx, strategy, n.ID.String(), string(n.Status)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to cache notification status")
	}

	return TestSendResult{
		NotificationID: n.ID,
		OwnerID:        owner.ID,
		Status:         n.Status,
		Sent:           sent,
		Preference:     owner.Preference,
	}, nil
}
