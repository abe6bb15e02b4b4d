package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/medbook/medbook-api/internal/dto"
	"github.com/medbook/medbook-api/internal/models"
	"github.com/medbook/medbook-api/internal/schedule"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

// DoctorListingCacheKey stores the assembled public listing.
const DoctorListingCacheKey = "doctors:listing:v1"

type doctorReadRepository interface {
	ListApproved(ctx context.Context) ([]models.Doctor, error)
	FindApprovedByID(ctx context.Context, id string) (*models.Doctor, error)
}

type availabilityReadRepository interface {
	ListByDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityWindow, error)
	ListByDoctors(ctx context.Context, doctorIDs []string) ([]models.AvailabilityWindow, error)
}

type ratingStatsRepository interface {
	StatsByDoctorIDs(ctx context.Context, doctorIDs []string) ([]models.ReviewStats, error)
}

type listingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DoctorServiceConfig tunes the read path.
type DoctorServiceConfig struct {
	SlotGranularity time.Duration
	ListingCacheTTL time.Duration
}

// DoctorService assembles the public doctor read path: listing, detail and
// bookable slots. Only approved doctors ever leave this service.
type DoctorService struct {
	doctors      doctorReadRepository
	availability availabilityReadRepository
	ratings      ratingStatsRepository
	cache        listingCache
	logger       *zap.Logger
	config       DoctorServiceConfig
}

// NewDoctorService constructs a DoctorService.
func NewDoctorService(doctors doctorReadRepository, availability availabilityReadRepository, ratings ratingStatsRepository, cache listingCache, logger *zap.Logger, config DoctorServiceConfig) *DoctorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.SlotGranularity <= 0 {
		config.SlotGranularity = schedule.DefaultGranularity
	}
	return &DoctorService{
		doctors:      doctors,
		availability: availability,
		ratings:      ratings,
		cache:        cache,
		logger:       logger,
		config:       config,
	}
}

// List returns all approved doctors with availability and review stats.
func (s *DoctorService) List(ctx context.Context) ([]dto.DoctorProfile, error) {
	if s.cache != nil {
		var cached []dto.DoctorProfile
		if err := s.cache.Get(ctx, DoctorListingCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	doctors, err := s.doctors.ListApproved(ctx)
	if err != nil {
		return nil, classifyStoreError(err, "failed to list doctors")
	}

	ids := make([]string, len(doctors))
	for i, d := range doctors {
		ids[i] = d.ID
	}

	windows, err := s.availability.ListByDoctors(ctx, ids)
	if err != nil {
		return nil, classifyStoreError(err, "failed to load availability")
	}
	windowsByDoctor := make(map[string][]models.AvailabilityWindow)
	for _, w := range windows {
		windowsByDoctor[w.DoctorID] = append(windowsByDoctor[w.DoctorID], w)
	}

	stats, err := s.ratings.StatsByDoctorIDs(ctx, ids)
	if err != nil {
		return nil, classifyStoreError(err, "failed to load review stats")
	}
	statsByDoctor := make(map[string]models.ReviewStats, len(stats))
	for _, st := range stats {
		statsByDoctor[st.DoctorID] = st
	}

	profiles := make([]dto.DoctorProfile, 0, len(doctors))
	for _, d := range doctors {
		profiles = append(profiles, s.assembleProfile(&d, windowsByDoctor[d.ID], statsByDoctor))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, DoctorListingCacheKey, profiles, s.config.ListingCacheTTL); err != nil {
			s.logger.Warn("failed to cache doctor listing", zap.Error(err))
		}
	}
	return profiles, nil
}

// Get returns a single approved doctor's profile, 404ing on anything not
// publicly visible.
func (s *DoctorService) Get(ctx context.Context, id string) (*dto.DoctorProfile, error) {
	doctor, err := s.doctors.FindApprovedByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor not found")
		}
		return nil, classifyStoreError(err, "failed to load doctor")
	}

	windows, err := s.availability.ListByDoctor(ctx, id)
	if err != nil {
		return nil, classifyStoreError(err, "failed to load availability")
	}

	stats, err := s.ratings.StatsByDoctorIDs(ctx, []string{id})
	if err != nil {
		return nil, classifyStoreError(err, "failed to load review stats")
	}
	statsByDoctor := make(map[string]models.ReviewStats, len(stats))
	for _, st := range stats {
		statsByDoctor[st.DoctorID] = st
	}

	profile := s.assembleProfile(doctor, windows, statsByDoctor)
	return &profile, nil
}

// Slots computes the bookable start times of a doctor for one calendar date.
// A doctor that is missing, not approved, or simply off that weekday gets an
// empty list, never an error.
func (s *DoctorService) Slots(ctx context.Context, doctorID, dateStr string) ([]string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}

	if _, err := s.doctors.FindApprovedByID(ctx, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []string{}, nil
		}
		return nil, classifyStoreError(err, "failed to load doctor")
	}

	windows, err := s.availability.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, classifyStoreError(err, "failed to load availability")
	}

	return schedule.Slots(windows, date, s.config.SlotGranularity), nil
}

func (s *DoctorService) assembleProfile(doctor *models.Doctor, windows []models.AvailabilityWindow, statsByDoctor map[string]models.ReviewStats) dto.DoctorProfile {
	schedule.SortWindows(windows)

	blocks := make([]dto.AvailabilityBlock, 0, len(windows))
	for _, w := range windows {
		blocks = append(blocks, dto.AvailabilityBlock{Day: w.Weekday, Start: w.Start, End: w.End})
	}

	var summary *string
	if text := schedule.Summary(windows); text != "" {
		summary = &text
	}

	profile := dto.DoctorProfile{
		ID:                  doctor.ID,
		Name:                doctor.FullName,
		Speciality:          doctor.Speciality,
		Email:               doctor.Email,
		Phone:               doctor.Phone,
		Hospital:            doctor.HospitalName,
		AvailabilitySummary: summary,
		AvailabilityBlocks:  blocks,
	}
	if st, ok := statsByDoctor[doctor.ID]; ok {
		avg := st.Average
		profile.ReviewCount = st.Count
		profile.AvgRating = &avg
	}
	return profile
}
