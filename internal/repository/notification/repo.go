package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/petclinic/reminder-notifier/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoNotificationsFound = errors.New("no notifications found")
)

const selectColumns = `
		n.id, n.message, n.type, n.status, n.scheduled_time, n.sent_time,
		n.created_at, n.updated_at,
		o.id, o.first_name, o.last_name, o.email, o.telephone, o.notification_preference,
		p.id, p.name, p.type, p.birth_date
`

// Repository provides access to the notifications table. Owner and pet
// references are materialized on read so the core never chases foreign keys
// itself.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateNotification inserts a new notification and returns its ID.
func (r *Repository) CreateNotification(ctx context.Context, n *model.Notification) (uuid.UUID, error) {
	query := `
		INSERT INTO notifications (
		    id, message, type, status, scheduled_time, owner_id, pet_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
    `

	var petID interface{}
	if n.Pet != nil {
		petID = n.Pet.ID
	}

	err := r.db.QueryRowContext(
		ctx, query, n.ID, n.Message, n.Type, n.Status, n.ScheduledTime, n.Owner.ID, petID,
	).Scan(&n.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return n.ID, nil
}

// UpdateDispatchResult writes back the status and sent time after a dispatch
// attempt.
func (r *Repository) UpdateDispatchResult(ctx context.Context, n *model.Notification) error {
	query := `
		UPDATE notifications
		SET status = $1, sent_time = $2, updated_at = NOW()
		WHERE id = $3;
    `

	res, err := r.db.ExecContext(ctx, query, n.Status, n.SentTime, n.ID)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// FindPendingNotifications retrieves pending notifications whose scheduled
// time is at or before now. Sent, failed and skipped notifications are never
// returned here.
func (r *Repository) FindPendingNotifications(ctx context.Context, now time.Time) ([]model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications n
		JOIN owners o ON o.id = n.owner_id
		LEFT JOIN pets p ON p.id = n.pet_id
		WHERE n.status = 'pending' AND n.scheduled_time <= $1
		ORDER BY n.scheduled_time;
    `

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find pending notifications: %w", err)
	}
	defer rows.Close()

	return scanNotifications(rows)
}

// GetNotificationStatusByID retrieves the status of a notification by its ID.
func (r *Repository) GetNotificationStatusByID(ctx context.Context, id uuid.UUID) (string, error) {
	query := `
		SELECT status
		FROM notifications
		WHERE id = $1;
    `

	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotificationNotFound
		}

		return "", fmt.Errorf("failed to get notification status: %w", err)
	}

	return status, nil
}

// GetNotificationsByOwner retrieves all notifications addressed to one owner.
func (r *Repository) GetNotificationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications n
		JOIN owners o ON o.id = n.owner_id
		LEFT JOIN pets p ON p.id = n.pet_id
		WHERE n.owner_id = $1
		ORDER BY n.scheduled_time DESC;
    `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications by owner: %w", err)
	}
	defer rows.Close()

	return scanNotifications(rows)
}

// GetAllNotifications retrieves all notifications ordered by scheduled time
// descending.
func (r *Repository) GetAllNotifications(ctx context.Context) ([]model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications n
		JOIN owners o ON o.id = n.owner_id
		LEFT JOIN pets p ON p.id = n.pet_id
		ORDER BY n.scheduled_time DESC;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all notifications: %w", err)
	}
	defer rows.Close()

	notifications, err := scanNotifications(rows)
	if err != nil {
		return nil, err
	}

	if len(notifications) == 0 {
		return nil, ErrNoNotificationsFound
	}

	return notifications, nil
}

func scanNotifications(rows *sql.Rows) ([]model.Notification, error) {
	var notifications []model.Notification

	for rows.Next() {
		var (
			n            model.Notification
			sentTime     sql.NullTime
			petID        uuid.NullUUID
			petName      sql.NullString
			petType      sql.NullString
			petBirthDate sql.NullTime
		)

		err := rows.Scan(
			&n.ID, &n.Message, &n.Type, &n.Status, &n.ScheduledTime, &sentTime,
			&n.CreatedAt, &n.UpdatedAt,
			&n.Owner.ID, &n.Owner.FirstName, &n.Owner.LastName,
			&n.Owner.Email, &n.Owner.Telephone, &n.Owner.Preference,
			&petID, &petName, &petType, &petBirthDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		if sentTime.Valid {
			n.SentTime = &sentTime.Time
		}

		if petID.Valid {
			pet := model.Pet{ID: petID.UUID, Name: petName.String, Type: petType.String}
			if petBirthDate.Valid {
				pet.BirthDate = &petBirthDate.Time
			}
			n.Pet = &pet
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	return notifications, nil
}
