package schedule

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

var ErrScheduleNotFound = errors.New("schedule not found")

// Repository provides access to the notification_schedules table. Owner, pet
// and visit references are materialized on read.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new schedule repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateSchedule inserts a new schedule and returns its ID.
func (r *Repository) CreateSchedule(ctx context.Context, s *model.Schedule) (uuid.UUID, error) {
	query := `
		INSERT INTO notification_schedules (
		    id, message_template, type, scheduled_time, days_before, enabled, owner_id, pet_id, visit_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
    `

	var petID, visitID interface{}
	if s.Pet != nil {
		petID = s.Pet.ID
	}
	if s.Visit != nil {
		visitID = s.Visit.ID
	}

	err := r.db.QueryRowContext(
		ctx, query,
		s.ID, s.MessageTemplate, s.Type, s.ScheduledTime, s.DaysBefore, s.Enabled,
		s.Owner.ID, petID, visitID,
	).Scan(&s.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	return s.ID, nil
}

// UpdateSchedule writes back the mutable schedule fields, most importantly
// the enabled flag after a one-shot schedule has fired.
func (r *Repository) UpdateSchedule(ctx context.Context, s *model.Schedule) error {
	query := `
		UPDATE notification_schedules
		SET enabled = $1, scheduled_time = $2, days_before = $3, updated_at = NOW()
		WHERE id = $4;
    `

	res, err := r.db.ExecContext(ctx, query, s.Enabled, s.ScheduledTime, s.DaysBefore, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// FindActiveSchedulesDue retrieves enabled schedules whose firing time is at
// or before now.
func (r *Repository) FindActiveSchedulesDue(ctx context.Context, now time.Time) ([]model.Schedule, error) {
	query := `
		SELECT
			s.id, s.message_template, s.type, s.scheduled_time, s.days_before, s.enabled,
			s.created_at, s.updated_at,
			o.id, o.first_name, o.last_name, o.email, o.telephone, o.notification_preference,
			p.id, p.name, p.type, p.birth_date,
			v.id, v.visit_date, v.description
		FROM notification_schedules s
		JOIN owners o ON o.id = s.owner_id
		LEFT JOIN pets p ON p.id = s.pet_id
		LEFT JOIN visits v ON v.id = s.visit_id
		WHERE s.enabled = TRUE AND s.scheduled_time <= $1
		ORDER BY s.scheduled_time;
    `

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find due schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.Schedule

	for rows.Next() {
		var (
			s            model.Schedule
			daysBefore   sql.NullInt64
			petID        uuid.NullUUID
			petName      sql.NullString
			petType      sql.NullString
			petBirthDate sql.NullTime
			visitID      uuid.NullUUID
			visitDate    sql.NullTime
			visitDesc    sql.NullString
		)

		err := rows.Scan(
			&s.ID, &s.MessageTemplate, &s.Type, &s.ScheduledTime, &daysBefore, &s.Enabled,
			&s.CreatedAt, &s.UpdatedAt,
			&s.Owner.ID, &s.Owner.FirstName, &s.Owner.LastName,
			&s.Owner.Email, &s.Owner.Telephone, &s.Owner.Preference,
			&petID, &petName, &petType, &petBirthDate,
			&visitID, &visitDate, &visitDesc,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}

		if daysBefore.Valid {
			days := int(daysBefore.Int64)
			s.DaysBefore = &days
		}

		if petID.Valid {
			pet := model.Pet{ID: petID.UUID, Name: petName.String, Type: petType.String}
			if petBirthDate.Valid {
				pet.BirthDate = &petBirthDate.Time
			}
			s.Pet = &pet
		}

		if visitID.Valid {
			visit := model.Visit{ID: visitID.UUID, Description: visitDesc.String}
			if visitDate.Valid {
				visit.Date = &visitDate.Time
			}
			s.Visit = &visit
		}

		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedules: %w", err)
	}

	return schedules, nil
}
