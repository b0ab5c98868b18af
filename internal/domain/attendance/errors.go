package attendance

import "errors"

// Attendance domain errors
var (
	// Clock event errors
	ErrAlreadyClockedIn    = errors.New("you have already clocked in")
	ErrNotClockedIn        = errors.New("you haven't clocked in yet")
	ErrOutsideOfficeRadius = errors.New("you are outside the office radius")
	ErrOutsideClockWindow  = errors.New("clock actions are not available at this hour")
	ErrLocationUnavailable = errors.New("no valid location fix")

	// Evidence errors
	ErrEvidenceUpload = errors.New("failed to upload attendance proof, please try again later")
	ErrEvidenceDelete = errors.New("failed to delete attendance proof")

	// Store errors
	ErrTransientWrite     = errors.New("attendance write failed, please try again")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
