package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medbook/medbook-api/internal/dto"
	"github.com/medbook/medbook-api/internal/models"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

type mockDoctorReadRepo struct {
	doctors map[string]*models.Doctor
}

func (m *mockDoctorReadRepo) ListApproved(ctx context.Context) ([]models.Doctor, error) {
	var list []models.Doctor
	for _, d := range m.doctors {
		if d.ApprovalState == models.ApprovalApproved {
			list = append(list, *d)
		}
	}
	return list, nil
}

func (m *mockDoctorReadRepo) FindApprovedByID(ctx context.Context, id string) (*models.Doctor, error) {
	if d, ok := m.doctors[id]; ok && d.ApprovalState == models.ApprovalApproved {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

type mockAvailabilityRepo struct {
	windows map[string][]models.AvailabilityWindow
}

func (m *mockAvailabilityRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityWindow, error) {
	return m.windows[doctorID], nil
}

func (m *mockAvailabilityRepo) ListByDoctors(ctx context.Context, doctorIDs []string) ([]models.AvailabilityWindow, error) {
	var all []models.AvailabilityWindow
	for _, id := range doctorIDs {
		all = append(all, m.windows[id]...)
	}
	return all, nil
}

type mockStatsRepo struct {
	stats []models.ReviewStats
}

func (m *mockStatsRepo) StatsByDoctorIDs(ctx context.Context, doctorIDs []string) ([]models.ReviewStats, error) {
	return m.stats, nil
}

type mockListingCache struct {
	store map[string][]dto.DoctorProfile
	hits  int
	sets  int
}

func (m *mockListingCache) Get(ctx context.Context, key string, dest interface{}) error {
	v, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	m.hits++
	if profiles, ok := dest.(*[]dto.DoctorProfile); ok {
		*profiles = v
	}
	return nil
}

func (m *mockListingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	profiles, ok := value.([]dto.DoctorProfile)
	if !ok {
		return nil
	}
	if m.store == nil {
		m.store = make(map[string][]dto.DoctorProfile)
	}
	m.store[key] = profiles
	m.sets++
	return nil
}

func newDoctorFixture() (*DoctorService, *mockListingCache) {
	doctors := &mockDoctorReadRepo{doctors: map[string]*models.Doctor{
		"d1": {ID: "d1", FullName: "Gregory House", Speciality: "Diagnostics", HospitalName: "Princeton", ApprovalState: models.ApprovalApproved},
		"d2": {ID: "d2", FullName: "New Hire", Speciality: "Cardiology", ApprovalState: models.ApprovalPending},
		"d3": {ID: "d3", FullName: "Struck Off", Speciality: "Surgery", ApprovalState: models.ApprovalRejected},
	}}
	availability := &mockAvailabilityRepo{windows: map[string][]models.AvailabilityWindow{
		"d1": {
			{DoctorID: "d1", Weekday: "Wed", Start: "09:00", End: "12:00"},
			{DoctorID: "d1", Weekday: "Mon", Start: "09:00", End: "12:00"},
		},
		"d2": {
			{DoctorID: "d2", Weekday: "Mon", Start: "09:00", End: "12:00"},
		},
	}}
	stats := &mockStatsRepo{stats: []models.ReviewStats{{DoctorID: "d1", Count: 4, Average: 4.5}}}
	cache := &mockListingCache{}
	svc := NewDoctorService(doctors, availability, stats, cache, zap.NewNop(), DoctorServiceConfig{
		SlotGranularity: 30 * time.Minute,
		ListingCacheTTL: time.Minute,
	})
	return svc, cache
}

func TestDoctorServiceListOnlyApproved(t *testing.T) {
	svc, cache := newDoctorFixture()

	profiles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	profile := profiles[0]
	assert.Equal(t, "d1", profile.ID)
	assert.Equal(t, "Gregory House", profile.Name)
	assert.Equal(t, "Princeton", profile.Hospital)
	require.NotNil(t, profile.AvailabilitySummary)
	assert.Equal(t, "Mon, Wed: 9:00 AM - 12:00 PM", *profile.AvailabilitySummary)
	assert.Len(t, profile.AvailabilityBlocks, 2)
	assert.Equal(t, "Mon", profile.AvailabilityBlocks[0].Day)
	assert.Equal(t, 4, profile.ReviewCount)
	require.NotNil(t, profile.AvgRating)
	assert.Equal(t, 4.5, *profile.AvgRating)

	assert.Equal(t, 1, cache.sets)

	// A second read is served from the cache.
	again, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profiles, again)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.sets)
}

func TestDoctorServiceGet(t *testing.T) {
	svc, _ := newDoctorFixture()
	ctx := context.Background()

	profile, err := svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Gregory House", profile.Name)

	for _, id := range []string{"d2", "d3", "ghost"} {
		_, err := svc.Get(ctx, id)
		assertErrorCode(t, err, appErrors.ErrNotFound.Code)
	}
}

func TestDoctorServiceSlots(t *testing.T) {
	svc, _ := newDoctorFixture()
	ctx := context.Background()

	// 2025-03-10 is a Monday.
	slots, err := svc.Slots(ctx, "d1", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slots)

	// Tuesday has no window.
	slots, err = svc.Slots(ctx, "d1", "2025-03-11")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDoctorServiceSlotsHiddenDoctors(t *testing.T) {
	svc, _ := newDoctorFixture()
	ctx := context.Background()

	// Unapproved and unknown doctors read as having no availability at all.
	for _, id := range []string{"d2", "d3", "ghost"} {
		slots, err := svc.Slots(ctx, id, "2025-03-10")
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestDoctorServiceSlotsBadDate(t *testing.T) {
	svc, _ := newDoctorFixture()

	_, err := svc.Slots(context.Background(), "d1", "10/03/2025")
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}
