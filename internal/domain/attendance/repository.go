package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
//
// SubmitClockIn and SubmitClockOut are the only write path: each runs as a
// single transaction that locks the user's status row, re-checks the open
// session, writes the record and flips the status flag together. Either both
// writes land or neither does.
type AttendanceRepository interface {
	// SubmitClockIn creates a new open record and sets the status flag to true.
	// Returns ErrAlreadyClockedIn when an open record already exists.
	SubmitClockIn(ctx context.Context, att Attendance) (Attendance, error)

	// SubmitClockOut fills the clock-out fields of the user's open record and
	// sets the status flag to false. Returns ErrNotClockedIn when no open
	// record exists.
	SubmitClockOut(ctx context.Context, out ClockOutUpdate) (Attendance, error)

	// GetOpenSession returns the user's most recent still-open record, by
	// clock-in time descending. Returns ErrNotClockedIn when there is none.
	GetOpenSession(ctx context.Context, userID string) (Attendance, error)

	// GetLatestByUser returns the most recent record by clock-in time, open or
	// closed. Returns ErrAttendanceNotFound when the user has no history.
	GetLatestByUser(ctx context.Context, userID string) (Attendance, error)

	// ListByUser returns the user's full history ordered by clock-in time.
	ListByUser(ctx context.Context, userID string, sort SortOrder) ([]Attendance, error)
}

// ClockOutUpdate carries the fields written to the open record on clock-out.
type ClockOutUpdate struct {
	UserID    string
	ClockOut  time.Time
	Latitude  float64
	Longitude float64
	PhotoURL  *string
}

// UserStatusRepository reads the denormalized status flag. Writes happen only
// through AttendanceRepository's submit transactions.
type UserStatusRepository interface {
	// Get returns the user's status. A user who has never clocked in reads as
	// not clocked in.
	Get(ctx context.Context, userID string) (UserStatus, error)
}
