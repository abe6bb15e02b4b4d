package dto

// AvailabilityBlock is one raw weekly window as shown to clients.
type AvailabilityBlock struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// DoctorProfile is the public listing/detail shape for an approved doctor.
type DoctorProfile struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Speciality          string              `json:"speciality"`
	Email               string              `json:"email"`
	Phone               string              `json:"phone"`
	Hospital            string              `json:"hospital"`
	AvailabilitySummary *string             `json:"availability_summary"`
	AvailabilityBlocks  []AvailabilityBlock `json:"availability_blocks"`
	ReviewCount         int                 `json:"review_count"`
	AvgRating           *float64            `json:"avg_rating"`
}
