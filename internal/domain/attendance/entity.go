package attendance

import (
	"time"
)

// Attendance is one clock-in/clock-out pair for a user. The record is created
// at clock-in and mutated exactly once when the matching clock-out fills the
// ClockOut* fields; after that it is immutable.
type Attendance struct {
	ID                string
	UserID            string
	ClockIn           time.Time
	ClockInLatitude   float64
	ClockInLongitude  float64
	ClockInPhotoURL   *string
	ClockOut          *time.Time
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ClockOutPhotoURL  *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOpen reports whether the record has not been clocked out yet.
func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// UserStatus is the denormalized "currently clocked in" flag. It is created
// implicitly on the first clock-in and only ever flipped inside the same
// transaction that writes the attendance record it mirrors.
type UserStatus struct {
	UserID      string
	IsClockedIn bool
	UpdatedAt   time.Time
}

// ClockEventType tags the two kinds of clock submissions.
type ClockEventType string

const (
	EventClockIn  ClockEventType = "CLOCK_IN"
	EventClockOut ClockEventType = "CLOCK_OUT"
)

// SortOrder controls history ordering by clock-in time.
type SortOrder string

const (
	SortNewestFirst SortOrder = "newest"
	SortOldestFirst SortOrder = "oldest"
)
