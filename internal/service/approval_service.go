package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medbook/medbook-api/internal/models"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

type doctorApprovalRepository interface {
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	UpdateApproval(ctx context.Context, doctor *models.Doctor) error
}

type approvalCache interface {
	Delete(ctx context.Context, keys ...string)
}

// ApprovalService drives the admin-triggered provider approval lifecycle.
// Each transition is a total overwrite of the approval columns; the listing
// cache is invalidated so visibility changes take effect promptly.
type ApprovalService struct {
	doctors doctorApprovalRepository
	cache   approvalCache
	logger  *zap.Logger
}

// NewApprovalService constructs an ApprovalService.
func NewApprovalService(doctors doctorApprovalRepository, cache approvalCache, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{doctors: doctors, cache: cache, logger: logger}
}

// Approve moves a pending doctor to approved, stamping time and approver.
func (s *ApprovalService) Approve(ctx context.Context, doctorID, adminID string) (*models.Doctor, error) {
	return s.transition(ctx, doctorID, models.ApprovalApproved, func(d *models.Doctor) {
		now := time.Now().UTC()
		d.ApprovedAt = &now
		if adminID != "" {
			d.ApprovedBy = &adminID
		}
		d.RejectionReason = nil
	})
}

// Reject moves a pending doctor to rejected with a stored reason.
func (s *ApprovalService) Reject(ctx context.Context, doctorID, reason string) (*models.Doctor, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection reason is required")
	}
	return s.transition(ctx, doctorID, models.ApprovalRejected, func(d *models.Doctor) {
		d.ApprovedAt = nil
		d.ApprovedBy = nil
		d.RejectionReason = &reason
	})
}

// Suspend takes an approved doctor off the public surface.
func (s *ApprovalService) Suspend(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.transition(ctx, doctorID, models.ApprovalSuspended, func(d *models.Doctor) {})
}

func (s *ApprovalService) transition(ctx context.Context, doctorID string, target models.ApprovalState, apply func(*models.Doctor)) (*models.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor not found")
		}
		return nil, classifyStoreError(err, "failed to load doctor")
	}

	if !doctor.ApprovalState.CanTransitionTo(target) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move doctor from %s to %s", doctor.ApprovalState, target))
	}

	previous := doctor.ApprovalState
	doctor.ApprovalState = target
	apply(doctor)

	if err := s.doctors.UpdateApproval(ctx, doctor); err != nil {
		return nil, classifyStoreError(err, "failed to update approval state")
	}

	if s.cache != nil {
		s.cache.Delete(ctx, DoctorListingCacheKey)
	}

	s.logger.Info("doctor approval state changed",
		zap.String("doctor_id", doctorID),
		zap.String("from", string(previous)),
		zap.String("to", string(target)),
	)
	return doctor, nil
}
