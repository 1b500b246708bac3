package models

import (
	"time"
)

// EditPermissionState is the per-(project, user) edit-access state.
// Absence of a row means no relationship at all.
type EditPermissionState string

const (
	EditPending  EditPermissionState = "PENDING"
	EditApproved EditPermissionState = "APPROVED"
)

// EditPermission is one row of the project_editors table.
type EditPermission struct {
	ProjectID   string              `json:"projectId" db:"project_id"`
	UserID      string              `json:"userId" db:"user_id"`
	State       EditPermissionState `json:"state" db:"state"`
	RequestedAt time.Time           `json:"requestedAt" db:"requested_at"`
	DecidedAt   *time.Time          `json:"decidedAt" db:"decided_at"`
}

// EditorInfo joins a permission row with the requesting user's display
// fields for the access-management drawer.
type EditorInfo struct {
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	UserProfileURL  *string   `json:"userProfileUrl"`
	RequestedAt     time.Time `json:"requestedAt"`
}

// ProjectPermissions groups the two visible permission lists of a project.
type ProjectPermissions struct {
	Pending  []EditorInfo `json:"pendingEditRequests"`
	Approved []EditorInfo `json:"approvedEditors"`
}
