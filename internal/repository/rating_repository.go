package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medbook/medbook-api/internal/models"
)

// RatingRepository manages persistence for post-visit ratings.
type RatingRepository struct {
	db *sqlx.DB
}

// NewRatingRepository constructs a RatingRepository.
func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert inserts the rating or, when the appointment was rated before,
// overwrites score, comment and timestamp in place. The appointment_id unique
// constraint guarantees a second distinct row can never appear.
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	const query = `INSERT INTO ratings (id, appointment_id, doctor_id, patient_id, score, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (appointment_id) DO UPDATE
		SET score = EXCLUDED.score, comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		rating.ID, rating.AppointmentID, rating.DoctorID, rating.PatientID,
		rating.Score, rating.Comment, now,
	)
	if err := row.Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// StatsByDoctorIDs computes review count and mean score per doctor in one
// pass. Doctors without ratings are simply absent from the result.
func (r *RatingRepository) StatsByDoctorIDs(ctx context.Context, doctorIDs []string) ([]models.ReviewStats, error) {
	if len(doctorIDs) == 0 {
		return []models.ReviewStats{}, nil
	}

	query, args, err := sqlx.In(`SELECT doctor_id, COUNT(*) AS review_count, AVG(score)::float8 AS avg_rating
		FROM ratings WHERE doctor_id IN (?)
		GROUP BY doctor_id`, doctorIDs)
	if err != nil {
		return nil, fmt.Errorf("build rating stats query: %w", err)
	}
	query = r.db.Rebind(query)

	stats := make([]models.ReviewStats, 0)
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("rating stats: %w", err)
	}
	return stats, nil
}
