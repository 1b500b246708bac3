package models

import (
	"time"
)

// Notification types used by the app.
const (
	NotifEventInvite     = "event-invite"
	NotifCestEditRequest = "cest_edit_request"
)

// Invite statuses for RSVP-style notifications.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteDeclined = "declined"
)

type Notification struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"userId" db:"user_id"`
	Type               string    `json:"type" db:"type"`
	Title              string    `json:"title" db:"title"`
	Message            string    `json:"message" db:"message"`
	EventID            *string   `json:"eventId" db:"event_id"`
	BookedByUserID     *string   `json:"bookedByUserId" db:"booked_by_user_id"`
	BookedByName       *string   `json:"bookedByName" db:"booked_by_name"`
	BookedByProfileURL *string   `json:"bookedByProfileUrl" db:"booked_by_profile_url"`
	InviteStatus       *string   `json:"inviteStatus" db:"invite_status"`
	Read               bool      `json:"read" db:"read"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}
