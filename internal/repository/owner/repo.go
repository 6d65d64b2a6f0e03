package owner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/petclinic/reminder-notifier/internal/model"
)

var (
	ErrOwnerNotFound = errors.New("owner not found")
	ErrPetNotFound   = errors.New("pet not found")
)

// Repository resolves owner contact endpoints and channel preferences.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new owner repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetOwnerByID retrieves a single owner.
func (r *Repository) GetOwnerByID(ctx context.Context, id uuid.UUID) (model.Owner, error) {
	query := `
		SELECT id, first_name, last_name, email, telephone, notification_preference
		FROM owners
		WHERE id = $1;
    `

	var o model.Owner
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.Telephone, &o.Preference,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Owner{}, ErrOwnerNotFound
		}

		return model.Owner{}, fmt.Errorf("failed to get owner: %w", err)
	}

	return o, nil
}

// GetPetByID retrieves a single pet reference.
func (r *Repository) GetPetByID(ctx context.Context, id uuid.UUID) (model.Pet, error) {
	query := `
		SELECT id, name, type, birth_date
		FROM pets
		WHERE id = $1;
    `

	var (
		p         model.Pet
		birthDate sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Type, &birthDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Pet{}, ErrPetNotFound
		}

		return model.Pet{}, fmt.Errorf("failed to get pet: %w", err)
	}

	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}

	return p, nil
}

// UpdatePreference changes an owner's notification preference.
func (r *Repository) UpdatePreference(ctx context.Context, id uuid.UUID, pref model.Preference) error {
	query := `
		UPDATE owners
		SET notification_preference = $1
		WHERE id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, pref, id)
	if err != nil {
		return fmt.Errorf("failed to update owner preference: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrOwnerNotFound
	}

	return nil
}
