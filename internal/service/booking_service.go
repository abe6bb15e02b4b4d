package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/medbook/medbook-api/internal/models"
	"github.com/medbook/medbook-api/internal/repository"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type bookingAppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	FindView(ctx context.Context, id string) (*models.AppointmentView, error)
	ListViewsByPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error)
	Cancel(ctx context.Context, id string) (bool, error)
}

type bookingUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type bookingDoctorRepository interface {
	FindApprovedByID(ctx context.Context, id string) (*models.Doctor, error)
}

// BookRequest is the booking payload.
type BookRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
	DoctorID  string `json:"doctor_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Reason    string `json:"reason"`
}

// BookingService is the booking guard: it validates an intent, then commits
// it with a single constraint-backed insert. The store's partial unique index
// is the only serialization point; there is no application-level lock and no
// pre-check, so under racing identical requests exactly one caller wins.
type BookingService struct {
	appointments bookingAppointmentRepository
	users        bookingUserRepository
	doctors      bookingDoctorRepository
	validator    *validator.Validate
	logger       *zap.Logger
	queryTimeout time.Duration
}

// NewBookingService constructs a BookingService.
func NewBookingService(appointments bookingAppointmentRepository, users bookingUserRepository, doctors bookingDoctorRepository, validate *validator.Validate, logger *zap.Logger, queryTimeout time.Duration) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		appointments: appointments,
		users:        users,
		doctors:      doctors,
		validator:    validate,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// Book attempts to commit a booking. Outcomes are the appointment view on
// success, VALIDATION_ERROR for malformed or unknown references, SLOT_TAKEN
// when another scheduled appointment holds the slot, and UNAVAILABLE when the
// store timed out.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*models.AppointmentView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "patient_id, doctor_id, date and time are required")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid time format, expected HH:MM")
	}

	if _, err := s.users.FindByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid patient or doctor")
		}
		return nil, classifyStoreError(err, "failed to load patient")
	}
	if _, err := s.doctors.FindApprovedByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid patient or doctor")
		}
		return nil, classifyStoreError(err, "failed to load doctor")
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = models.DefaultReason
	}

	appt := &models.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Reason:    reason,
	}

	writeCtx, cancel := s.boundedCtx(ctx)
	defer cancel()
	if err := s.appointments.Create(writeCtx, appt); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, appErrors.Clone(appErrors.ErrSlotTaken,
				fmt.Sprintf("doctor is already booked on %s at %s", req.Date, req.Time))
		}
		return nil, classifyStoreError(err, "failed to create appointment")
	}

	s.logger.Info("appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("doctor_id", appt.DoctorID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)

	// Display composition happens outside the atomic section: the write has
	// already committed, only the denormalized view is read here.
	view, err := s.appointments.FindView(ctx, appt.ID)
	if err != nil {
		return nil, classifyStoreError(err, "failed to load appointment view")
	}
	return view, nil
}

// Cancel flips a scheduled appointment to cancelled. Re-cancelling is an
// error, not a no-op, so callers can tell a redundant request apart.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.AppointmentView, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, classifyStoreError(err, "failed to load appointment")
	}
	if appt.Status == models.AppointmentCancelled {
		return nil, appErrors.Clone(appErrors.ErrAlreadyCancelled, "")
	}

	writeCtx, cancel := s.boundedCtx(ctx)
	defer cancel()
	changed, err := s.appointments.Cancel(writeCtx, id)
	if err != nil {
		return nil, classifyStoreError(err, "failed to cancel appointment")
	}
	if !changed {
		// Lost a race against another cancel.
		return nil, appErrors.Clone(appErrors.ErrAlreadyCancelled, "")
	}

	s.logger.Info("appointment cancelled", zap.String("appointment_id", id))

	view, err := s.appointments.FindView(ctx, id)
	if err != nil {
		return nil, classifyStoreError(err, "failed to load appointment view")
	}
	return view, nil
}

// ListForPatient returns a patient's appointments ordered by date and time.
func (s *BookingService) ListForPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error) {
	if _, err := s.users.FindByID(ctx, patientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, classifyStoreError(err, "failed to load patient")
	}

	views, err := s.appointments.ListViewsByPatient(ctx, patientID)
	if err != nil {
		return nil, classifyStoreError(err, "failed to list appointments")
	}
	return views, nil
}

func (s *BookingService) boundedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
