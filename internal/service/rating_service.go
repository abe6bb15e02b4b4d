package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/medbook/medbook-api/internal/models"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

type ratingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	StatsByDoctorIDs(ctx context.Context, doctorIDs []string) ([]models.ReviewStats, error)
}

type ratingAppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
}

// RateRequest is the rating payload. Non-numeric scores never get here: JSON
// binding rejects them before the service runs.
type RateRequest struct {
	Score   float64 `json:"score" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// RatingService folds post-visit feedback into per-doctor statistics and
// enforces the one-rating-per-appointment rule via the store's unique
// constraint and upsert semantics.
type RatingService struct {
	ratings      ratingRepository
	appointments ratingAppointmentRepository
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewRatingService constructs a RatingService.
func NewRatingService(ratings ratingRepository, appointments ratingAppointmentRepository, validate *validator.Validate, logger *zap.Logger) *RatingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatingService{
		ratings:      ratings,
		appointments: appointments,
		validator:    validate,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Rate records feedback for a completed appointment. Preconditions: the
// appointment exists, is not cancelled, and its date is strictly in the past.
// Re-rating edits the existing row in place.
func (s *RatingService) Rate(ctx context.Context, appointmentID string, req RateRequest) (*models.Rating, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "score must be between 1.0 and 5.0")
	}

	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, classifyStoreError(err, "failed to load appointment")
	}

	if appt.Status == models.AppointmentCancelled {
		return nil, appErrors.Clone(appErrors.ErrRatingNotAllowed, "cancelled appointments cannot be rated")
	}
	if appt.DateString() >= s.now().Format(dateLayout) {
		return nil, appErrors.Clone(appErrors.ErrRatingNotAllowed, "appointments can only be rated after the visit date")
	}

	rating := &models.Rating{
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		Score:         NormalizeScore(req.Score),
		Comment:       req.Comment,
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, classifyStoreError(err, "failed to save rating")
	}

	s.logger.Info("rating recorded",
		zap.String("appointment_id", appt.ID),
		zap.String("doctor_id", appt.DoctorID),
		zap.Float64("score", rating.Score),
	)
	return rating, nil
}

// Stats returns review count and mean score per doctor. Doctors without
// ratings are absent from the map.
func (s *RatingService) Stats(ctx context.Context, doctorIDs []string) (map[string]models.ReviewStats, error) {
	stats, err := s.ratings.StatsByDoctorIDs(ctx, doctorIDs)
	if err != nil {
		return nil, classifyStoreError(err, "failed to load review stats")
	}
	byDoctor := make(map[string]models.ReviewStats, len(stats))
	for _, st := range stats {
		byDoctor[st.DoctorID] = st
	}
	return byDoctor, nil
}

// NormalizeScore snaps an in-range score to half-star granularity.
func NormalizeScore(score float64) float64 {
	rounded := math.Round(score*2) / 2
	if rounded < 1.0 {
		return 1.0
	}
	if rounded > 5.0 {
		return 5.0
	}
	return rounded
}
