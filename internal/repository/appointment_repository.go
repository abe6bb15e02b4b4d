package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/medbook/medbook-api/internal/models"
)

// ErrDuplicateSlot signals that another scheduled appointment already holds
// the same (doctor, date, time) triple. It is produced by the partial unique
// index uq_doctor_slot, never by an application-level pre-check.
var ErrDuplicateSlot = errors.New("slot already has a scheduled appointment")

const appointmentViewColumns = `a.id, a.patient_id, a.doctor_id,
		to_char(a.appointment_date, 'YYYY-MM-DD') AS date, a.appointment_time AS time,
		a.status, a.reason, a.created_at,
		d.full_name AS doctor_name, d.speciality, h.name AS hospital`

// AppointmentRepository manages persistence for bookings.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs an AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts the appointment in scheduled state. The uniqueness check and
// the insert are one atomic statement: when two bookings race for the same
// slot the index rejects the loser and ErrDuplicateSlot is returned.
func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now().UTC()
	}
	appt.Status = models.AppointmentScheduled

	const query = `INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, appointment_time, status, reason, created_at)
		VALUES (:id, :patient_id, :doctor_id, :appointment_date, :appointment_time, :status, :reason, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, appt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// FindByID fetches a raw appointment row.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	const query = `SELECT id, patient_id, doctor_id, appointment_date, appointment_time, status, reason, created_at
		FROM appointments WHERE id = $1`
	var appt models.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		return nil, err
	}
	return &appt, nil
}

// FindView fetches the denormalized appointment shape for display.
func (r *AppointmentRepository) FindView(ctx context.Context, id string) (*models.AppointmentView, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN hospitals h ON h.id = d.hospital_id
		WHERE a.id = $1`, appointmentViewColumns)
	var view models.AppointmentView
	if err := r.db.GetContext(ctx, &view, query, id); err != nil {
		return nil, err
	}
	return &view, nil
}

// ListViewsByPatient returns a patient's appointments ordered by date and time.
func (r *AppointmentRepository) ListViewsByPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN hospitals h ON h.id = d.hospital_id
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date ASC, a.appointment_time ASC`, appointmentViewColumns)
	views := make([]models.AppointmentView, 0)
	if err := r.db.SelectContext(ctx, &views, query, patientID); err != nil {
		return nil, fmt.Errorf("list appointments for patient %s: %w", patientID, err)
	}
	return views, nil
}

// Cancel flips a scheduled appointment to cancelled. It reports whether a row
// actually changed, so a concurrent second cancel observes false.
func (r *AppointmentRepository) Cancel(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE appointments SET status = 'cancelled' WHERE id = $1 AND status = 'scheduled'`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("cancel appointment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancel appointment rows: %w", err)
	}
	return affected == 1, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
