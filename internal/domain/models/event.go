package models

import (
	"time"
)

type CalendarEvent struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Date             string    `json:"date" db:"date"`
	Time             *string   `json:"time" db:"time"`
	Location         *string   `json:"location" db:"location"`
	BookedByID       *string   `json:"bookedById" db:"booked_by_id"`
	BookedService    *string   `json:"bookedService" db:"booked_service"`
	StaffInvolvedIDs []string  `json:"staffInvolvedIds" db:"staff_involved_ids"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// InviteStatus is the RSVP state of one invited staff member,
// resolved from event-invite notifications.
type InviteStatus struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// CalendarEventView decorates an event with resolved user summaries
// and per-invitee RSVP statuses for the calendar page.
type CalendarEventView struct {
	CalendarEvent
	StaffInvolvedUsers []UserSummary  `json:"staffInvolvedUsers"`
	BookedByUser       *UserSummary   `json:"bookedByUser"`
	InviteStatuses     []InviteStatus `json:"inviteStatuses"`
}
