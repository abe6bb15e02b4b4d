package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medbook/medbook-api/internal/models"
)

// AvailabilityRepository reads recurring weekly windows. Windows are owned by
// provider-profile management, so this repository is read-only.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs an AvailabilityRepository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByDoctor returns all windows of a single doctor.
func (r *AvailabilityRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityWindow, error) {
	const query = `SELECT id, doctor_id, weekday, start_time, end_time
		FROM doctor_availability WHERE doctor_id = $1`
	windows := make([]models.AvailabilityWindow, 0)
	if err := r.db.SelectContext(ctx, &windows, query, doctorID); err != nil {
		return nil, fmt.Errorf("list availability for doctor %s: %w", doctorID, err)
	}
	return windows, nil
}

// ListByDoctors preloads the windows of many doctors in one query, avoiding
// per-doctor round trips when assembling the listing.
func (r *AvailabilityRepository) ListByDoctors(ctx context.Context, doctorIDs []string) ([]models.AvailabilityWindow, error) {
	if len(doctorIDs) == 0 {
		return []models.AvailabilityWindow{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, doctor_id, weekday, start_time, end_time
		FROM doctor_availability WHERE doctor_id IN (?)`, doctorIDs)
	if err != nil {
		return nil, fmt.Errorf("build availability query: %w", err)
	}
	query = r.db.Rebind(query)

	windows := make([]models.AvailabilityWindow, 0)
	if err := r.db.SelectContext(ctx, &windows, query, args...); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return windows, nil
}
