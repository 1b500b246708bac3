package models

import (
	"time"
)

// ProjectKind discriminates the two tracked programs.
type ProjectKind string

const (
	KindSetup ProjectKind = "SETUP"
	KindCest  ProjectKind = "CEST"
)

// Valid reports whether k is a known program kind.
func (k ProjectKind) Valid() bool {
	return k == KindSetup || k == KindCest
}

// Project statuses as shown in the tracking dashboards.
const (
	StatusProposal   = "PROPOSAL"
	StatusApproved   = "APPROVED"
	StatusOngoing    = "ONGOING"
	StatusCompleted  = "COMPLETED"
	StatusTerminated = "TERMINATED"
	StatusWithdrawn  = "WITHDRAWN"
	StatusEvaluated  = "EVALUATED"
)

type Project struct {
	ID                string      `json:"id" db:"id"`
	Kind              ProjectKind `json:"kind" db:"kind"`
	Code              string      `json:"code" db:"code"`
	Title             string      `json:"projectTitle" db:"title"`
	Firm              *string     `json:"firm" db:"firm"`
	TypeOfFirm        *string     `json:"typeOfFirm" db:"type_of_firm"`
	Location          *string     `json:"location" db:"location"`
	Beneficiaries     *string     `json:"beneficiaries" db:"beneficiaries"`
	ProgramFunding    *string     `json:"programFunding" db:"program_funding"`
	Categories        []string    `json:"categories" db:"categories"`
	Status            *string     `json:"status" db:"status"`
	ApprovedAmount    *float64    `json:"approvedAmount" db:"approved_amount"`
	ReleasedAmount    *float64    `json:"releasedAmount" db:"released_amount"`
	ProjectDuration   *string     `json:"projectDuration" db:"project_duration"`
	StaffAssignedID   *string     `json:"staffAssignedId" db:"staff_assigned_id"`
	StaffAssignedName *string     `json:"staffAssigned" db:"staff_assigned_name"`
	AssigneeProfile   *string     `json:"assigneeProfileUrl" db:"assignee_profile_url"`
	Year              *string     `json:"year" db:"year"`
	DateOfApproval    *string     `json:"dateOfApproval" db:"date_of_approval"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`

	// Computed from the project_editors table, never stored on the row.
	PendingEditRequests []string `json:"pendingEditRequests"`
	ApprovedEditors     []string `json:"approvedEditors"`
}
