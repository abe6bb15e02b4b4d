package models

import "time"

// Rating is post-visit feedback. Exactly zero or one rating exists per
// appointment; re-submitting edits the original row in place.
type Rating struct {
	ID            string    `db:"id" json:"id"`
	AppointmentID string    `db:"appointment_id" json:"appointment_id"`
	DoctorID      string    `db:"doctor_id" json:"doctor_id"`
	PatientID     string    `db:"patient_id" json:"patient_id"`
	Score         float64   `db:"score" json:"score"`
	Comment       *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ReviewStats aggregates the ratings of a single doctor.
type ReviewStats struct {
	DoctorID string  `db:"doctor_id" json:"doctor_id"`
	Count    int     `db:"review_count" json:"review_count"`
	Average  float64 `db:"avg_rating" json:"avg_rating"`
}
