package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/petclinic/reminder-notifier/internal/api/dto"
	"github.com/petclinic/reminder-notifier/internal/api/respond"
	"github.com/petclinic/reminder-notifier/internal/config"
	"github.com/petclinic/reminder-notifier/internal/model"
	notifrepo "github.com/petclinic/reminder-notifier/internal/repository/notification"
	ownerrepo "github.com/petclinic/reminder-notifier/internal/repository/owner"
	notifsvc "github.com/petclinic/reminder-notifier/internal/service/notification"
)

// visitDateLayout is the date-only format accepted for visit dates.
const visitDateLayout = "2006-01-02"

// notificationService defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	CreateSchedule(ctx context.Context, schedule model.Schedule) (uuid.UUID, error)
	GetNotificationStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error)
	GetNotifications(ctx context.Context, ownerID *uuid.UUID) ([]model.Notification, error)
	UpdatePreference(ctx context.Context, ownerID uuid.UUID, preference string) (model.Owner, error)
	SendTestNotification(ctx context.Context, strategy retry.Strategy, ownerID uuid.UUID, petID *uuid.UUID, message string) (notifsvc.TestSendResult, error)
}

// Handler handles HTTP requests related to notifications: creating
// schedules, listing notifications, checking status, updating owner
// preferences and sending test notifications.
type Handler struct {
	service   notificationService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(s notificationService, v *validator.Validate, cfg *config.Config) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// CreateSchedule handles POST requests to create a notification schedule.
//
// A schedule either carries an explicit scheduled_time or is bound to a
// visit, in which case the firing time is derived from the visit date and
// the days_before offset.
func (h *Handler) CreateSchedule(c *ginext.Context) {
	var req dto.CreateScheduleRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	notifType, err := model.ParseNotificationType(req.Type)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	ownerID, _ := uuid.Parse(req.OwnerID)

	schedule := model.Schedule{
		MessageTemplate: req.MessageTemplate,
		Type:            notifType,
		Enabled:         true,
		Owner:           model.Owner{ID: ownerID},
	}

	if req.PetID != "" {
		petID, _ := uuid.Parse(req.PetID)
		schedule.Pet = &model.Pet{ID: petID}
	}

	if req.ScheduledTime != "" {
		scheduledTime, err := time.Parse(time.RFC3339, req.ScheduledTime)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid scheduled_time format"))
			return
		}
		schedule.ScheduledTime = scheduledTime
	}

	if req.VisitID != "" {
		visitID, _ := uuid.Parse(req.VisitID)
		visit := &model.Visit{ID: visitID}

		if req.VisitDate != "" {
			visitDate, err := time.Parse(visitDateLayout, req.VisitDate)
			if err != nil {
				respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid visit_date format"))
				return
			}
			visit.Date = &visitDate
		}

		if req.DaysBefore != nil {
			schedule.DaysBefore = req.DaysBefore
		}
		schedule.SetVisit(visit)
	}

	if schedule.ScheduledTime.IsZero() {
		respond.Fail(c.Writer, http.StatusBadRequest,
			fmt.Errorf("either scheduled_time or visit_id with visit_date and days_before is required"))
		return
	}

	id, err := h.service.CreateSchedule(c.Request.Context(), schedule)
	if err != nil {
		if errors.Is(err, ownerrepo.ErrOwnerNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("owner not found"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to create schedule")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

// GetStatus handles GET requests to retrieve the status of a notification.
func (h *Handler) GetStatus(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	status, err := h.service.GetNotificationStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// GetNotifications handles GET requests to list notifications, optionally
// filtered by owner via the owner_id query parameter.
func (h *Handler) GetNotifications(c *ginext.Context) {
	var ownerID *uuid.UUID

	if ownerIDStr := c.Query("owner_id"); ownerIDStr != "" {
		id, err := uuid.Parse(ownerIDStr)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid owner_id"))
			return
		}
		ownerID = &id
	}

	notifications, err := h.service.GetNotifications(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNoNotificationsFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("no notifications found"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to get notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notifications)
}

// UpdatePreference handles PUT requests to change an owner's notification
// preference. An unrecognized preference value is rejected with 400.
func (h *Handler) UpdatePreference(c *ginext.Context) {
	idStr := c.Param("id")
	ownerID, err := uuid.Parse(idStr)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid owner id"))
		return
	}

	var req dto.UpdatePreferenceRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	owner, err := h.service.UpdatePreference(c.Request.Context(), ownerID, req.Preference)
	if err != nil {
		if errors.Is(err, model.ErrInvalidPreference) {
			respond.Fail(c.Writer, http.StatusBadRequest,
				fmt.Errorf("invalid notification preference: %q, valid values are: email, sms, both, none", req.Preference))
			return
		}

		if errors.Is(err, ownerrepo.ErrOwnerNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("owner not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("owner_id", ownerID.String()).Msg("failed to update preference")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, owner)
}

// SendTest handles POST requests to send an on-demand test notification.
func (h *Handler) SendTest(c *ginext.Context) {
	var req dto.TestNotificationRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	ownerID, _ := uuid.Parse(req.OwnerID)

	var petID *uuid.UUID
	if req.PetID != "" {
		id, _ := uuid.Parse(req.PetID)
		petID = &id
	}

	result, err := h.service.SendTestNotification(c.Request.Context(), h.cfg.Retry, ownerID, petID, req.Message)
	if err != nil {
		if errors.Is(err, ownerrepo.ErrOwnerNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("owner not found"))
			return
		}

		if errors.Is(err, ownerrepo.ErrPetNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("pet not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("owner_id", ownerID.String()).Msg("failed to send test notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, result)
}
