package models

import "time"

// AppointmentStatus is the lifecycle state of a booking.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// DefaultReason is stored when a booking arrives without a stated reason.
const DefaultReason = "Unstated"

// Appointment is a committed booking row. At most one appointment per
// (doctor, date, time) may be in scheduled state; the database enforces it.
type Appointment struct {
	ID        string            `db:"id" json:"id"`
	PatientID string            `db:"patient_id" json:"patient_id"`
	DoctorID  string            `db:"doctor_id" json:"doctor_id"`
	Date      time.Time         `db:"appointment_date" json:"-"`
	Time      string            `db:"appointment_time" json:"time"`
	Status    AppointmentStatus `db:"status" json:"status"`
	Reason    string            `db:"reason" json:"reason"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// DateString renders the appointment date in the wire format.
func (a *Appointment) DateString() string {
	return a.Date.Format("2006-01-02")
}

// AppointmentView is the denormalized appointment shape returned to clients.
type AppointmentView struct {
	ID         string            `db:"id" json:"id"`
	PatientID  string            `db:"patient_id" json:"patient_id"`
	DoctorID   string            `db:"doctor_id" json:"doctor_id"`
	Date       string            `db:"date" json:"date"`
	Time       string            `db:"time" json:"time"`
	Status     AppointmentStatus `db:"status" json:"status"`
	Reason     string            `db:"reason" json:"reason"`
	DoctorName string            `db:"doctor_name" json:"doctor_name"`
	Speciality string            `db:"speciality" json:"speciality"`
	Hospital   string            `db:"hospital" json:"hospital"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
}
