package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medbook/medbook-api/internal/models"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

type mockRatingRepo struct {
	byAppointment map[string]models.Rating
	stats         []models.ReviewStats
}

func (m *mockRatingRepo) Upsert(ctx context.Context, rating *models.Rating) error {
	if m.byAppointment == nil {
		m.byAppointment = make(map[string]models.Rating)
	}
	if existing, ok := m.byAppointment[rating.AppointmentID]; ok {
		rating.ID = existing.ID
	} else {
		rating.ID = "rating-" + rating.AppointmentID
	}
	m.byAppointment[rating.AppointmentID] = *rating
	return nil
}

func (m *mockRatingRepo) StatsByDoctorIDs(ctx context.Context, doctorIDs []string) ([]models.ReviewStats, error) {
	return m.stats, nil
}

type mockRatingAppointmentRepo struct {
	appointments map[string]*models.Appointment
}

func (m *mockRatingAppointmentRepo) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	if a, ok := m.appointments[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func newRatingFixture(now time.Time) (*RatingService, *mockRatingRepo) {
	day := 24 * time.Hour
	appointments := &mockRatingAppointmentRepo{appointments: map[string]*models.Appointment{
		"past":      {ID: "past", PatientID: "p1", DoctorID: "d1", Date: now.Add(-2 * day), Time: "09:30", Status: models.AppointmentScheduled},
		"today":     {ID: "today", PatientID: "p1", DoctorID: "d1", Date: now, Time: "09:30", Status: models.AppointmentScheduled},
		"future":    {ID: "future", PatientID: "p1", DoctorID: "d1", Date: now.Add(2 * day), Time: "09:30", Status: models.AppointmentScheduled},
		"cancelled": {ID: "cancelled", PatientID: "p1", DoctorID: "d1", Date: now.Add(-2 * day), Time: "09:30", Status: models.AppointmentCancelled},
	}}
	repo := &mockRatingRepo{}
	svc := NewRatingService(repo, appointments, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestRatingServiceRate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, repo := newRatingFixture(now)
	comment := "very thorough"

	rating, err := svc.Rate(context.Background(), "past", RateRequest{Score: 4.3, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating.Score)
	assert.Equal(t, "d1", rating.DoctorID)
	assert.Equal(t, "p1", rating.PatientID)
	require.NotNil(t, rating.Comment)
	assert.Equal(t, comment, *rating.Comment)
	assert.Len(t, repo.byAppointment, 1)
}

func TestRatingServiceRateReplacesExisting(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, repo := newRatingFixture(now)
	ctx := context.Background()

	first, err := svc.Rate(ctx, "past", RateRequest{Score: 2})
	require.NoError(t, err)
	second, err := svc.Rate(ctx, "past", RateRequest{Score: 5})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byAppointment, 1)
	assert.Equal(t, 5.0, repo.byAppointment["past"].Score)
}

func TestRatingServiceRateScoreBounds(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newRatingFixture(now)
	ctx := context.Background()

	for _, score := range []float64{0, 0.2, 0.99, 5.01, 6} {
		_, err := svc.Rate(ctx, "past", RateRequest{Score: score})
		assertErrorCode(t, err, appErrors.ErrValidation.Code)
	}
}

func TestRatingServiceRatePreconditions(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newRatingFixture(now)
	ctx := context.Background()

	_, err := svc.Rate(ctx, "missing", RateRequest{Score: 4})
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)

	_, err = svc.Rate(ctx, "cancelled", RateRequest{Score: 4})
	assertErrorCode(t, err, appErrors.ErrRatingNotAllowed.Code)

	// Same-day visits are not ratable yet, only strictly past ones.
	_, err = svc.Rate(ctx, "today", RateRequest{Score: 4})
	assertErrorCode(t, err, appErrors.ErrRatingNotAllowed.Code)

	_, err = svc.Rate(ctx, "future", RateRequest{Score: 4})
	assertErrorCode(t, err, appErrors.ErrRatingNotAllowed.Code)
}

func TestRatingServiceStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, repo := newRatingFixture(now)
	repo.stats = []models.ReviewStats{
		{DoctorID: "d1", Count: 3, Average: 4.17},
		{DoctorID: "d2", Count: 1, Average: 5},
	}

	stats, err := svc.Stats(context.Background(), []string{"d1", "d2", "d3"})
	require.NoError(t, err)
	assert.Len(t, stats, 2)
	assert.Equal(t, 3, stats["d1"].Count)
	_, ok := stats["d3"]
	assert.False(t, ok)
}

func TestNormalizeScore(t *testing.T) {
	cases := map[float64]float64{
		1:    1,
		1.2:  1,
		1.25: 1.5,
		4.3:  4.5,
		4.74: 4.5,
		4.75: 5,
		5:    5,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeScore(in), "score %v", in)
	}
}
