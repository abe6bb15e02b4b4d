package models

import "time"

// ApprovalState tracks a doctor's place in the admin approval lifecycle.
type ApprovalState string

const (
	ApprovalPending   ApprovalState = "pending"
	ApprovalApproved  ApprovalState = "approved"
	ApprovalRejected  ApprovalState = "rejected"
	ApprovalSuspended ApprovalState = "suspended"
)

// approvalTransitions enumerates the legal state changes. Approval is a hard
// visibility gate: anything not approved is invisible to the public read path.
var approvalTransitions = map[ApprovalState][]ApprovalState{
	ApprovalPending:  {ApprovalApproved, ApprovalRejected},
	ApprovalApproved: {ApprovalSuspended},
}

// CanTransitionTo reports whether moving from s to target is a legal transition.
func (s ApprovalState) CanTransitionTo(target ApprovalState) bool {
	for _, next := range approvalTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Doctor represents a provider profile joined with its host hospital.
type Doctor struct {
	ID              string        `db:"id" json:"id"`
	FullName        string        `db:"full_name" json:"full_name"`
	Speciality      string        `db:"speciality" json:"speciality"`
	Email           string        `db:"email" json:"email"`
	Phone           string        `db:"phone" json:"phone"`
	HospitalID      string        `db:"hospital_id" json:"hospital_id"`
	HospitalName    string        `db:"hospital_name" json:"hospital"`
	ApprovalState   ApprovalState `db:"approval_state" json:"approval_state"`
	ApprovedAt      *time.Time    `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy      *string       `db:"approved_by" json:"approved_by,omitempty"`
	RejectionReason *string       `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// Hospital represents a host facility.
type Hospital struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   *string   `db:"address" json:"address,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
