package models

import (
	"time"
)

// Role values for User.Role
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

type User struct {
	ID              string    `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	FullName        string    `json:"fullName" db:"full_name"`
	ContactNo       *string   `json:"contactNo" db:"contact_no"`
	Role            string    `json:"role" db:"role"`
	IsApproved      bool      `json:"isApproved" db:"is_approved"`
	ProfileImageURL *string   `json:"profileImageUrl" db:"profile_image_url"`
	Birthday        *DateOnly `json:"birthday" db:"birthday"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// UserSummary is the subset of user fields embedded in other responses
// (calendar attendees, leaderboard rows, permission lists).
type UserSummary struct {
	ID              string  `json:"id"`
	FullName        string  `json:"fullName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// DateOnly is a calendar date serialized as "YYYY-MM-DD".
// Birthdays are dates without a timezone; serializing the bare date avoids
// the UTC-offset shift the stored timestamps would otherwise leak.
type DateOnly time.Time

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	t, err := time.Parse(`"2006-01-02"`, s)
	if err != nil {
		return err
	}
	*d = DateOnly(t)
	return nil
}

func (d DateOnly) Time() time.Time {
	return time.Time(d)
}
