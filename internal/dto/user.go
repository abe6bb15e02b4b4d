package dto

// UserProfile is the patient profile shape with the age derived from the
// stored date of birth at read time.
type UserProfile struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    string  `json:"name"`
	Phone       string  `json:"phone"`
	Age         *int    `json:"age"`
	Gender      *string `json:"gender,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	HeightCm    *int    `json:"height,omitempty"`
	WeightKg    *int    `json:"weight,omitempty"`
}
