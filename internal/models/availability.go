package models

// AvailabilityWindow is one recurring weekly availability row for a doctor.
// Times are wall-clock "HH:MM" strings in the system's canonical timezone.
type AvailabilityWindow struct {
	ID       string `db:"id" json:"id"`
	DoctorID string `db:"doctor_id" json:"doctor_id"`
	Weekday  string `db:"weekday" json:"day"`
	Start    string `db:"start_time" json:"start"`
	End      string `db:"end_time" json:"end"`
}
