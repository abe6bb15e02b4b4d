package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medbook/medbook-api/internal/models"
)

const doctorColumns = `d.id, d.full_name, d.speciality, d.email, d.phone, d.hospital_id, h.name AS hospital_name,
		d.approval_state, d.approved_at, d.approved_by, d.rejection_reason, d.created_at, d.updated_at`

// DoctorRepository manages persistence for doctor profiles.
type DoctorRepository struct {
	db *sqlx.DB
}

// NewDoctorRepository constructs a DoctorRepository.
func NewDoctorRepository(db *sqlx.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// ListApproved returns all publicly visible doctors joined with their hospital.
// The approval filter lives in SQL so non-approved profiles never leave the store.
func (r *DoctorRepository) ListApproved(ctx context.Context) ([]models.Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM doctors d
		JOIN hospitals h ON h.id = d.hospital_id
		WHERE d.approval_state = 'approved'
		ORDER BY d.full_name ASC`, doctorColumns)
	doctors := make([]models.Doctor, 0)
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("list approved doctors: %w", err)
	}
	return doctors, nil
}

// FindByID fetches a doctor regardless of approval state.
func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM doctors d
		JOIN hospitals h ON h.id = d.hospital_id
		WHERE d.id = $1`, doctorColumns)
	var doctor models.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// FindApprovedByID fetches a doctor only when publicly visible.
func (r *DoctorRepository) FindApprovedByID(ctx context.Context, id string) (*models.Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM doctors d
		JOIN hospitals h ON h.id = d.hospital_id
		WHERE d.id = $1 AND d.approval_state = 'approved'`, doctorColumns)
	var doctor models.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// UpdateApproval overwrites the approval columns of a doctor.
func (r *DoctorRepository) UpdateApproval(ctx context.Context, doctor *models.Doctor) error {
	doctor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE doctors SET approval_state = :approval_state, approved_at = :approved_at,
		approved_by = :approved_by, rejection_reason = :rejection_reason, updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, doctor); err != nil {
		return fmt.Errorf("update doctor approval: %w", err)
	}
	return nil
}
