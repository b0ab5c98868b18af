package attendance

import (
	"context"
)

// AttendanceService defines business logic for the clock-event pipeline.
type AttendanceService interface {
	// ClockIn validates the geofence, uploads (or reuses) the proof photo and
	// opens a new attendance record atomically with the status flag.
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the user's open record the same way.
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// Latest returns the most recent record for the authenticated user,
	// open or closed. Used by the home screen.
	Latest(ctx context.Context) (AttendanceResponse, error)

	// History returns the full attendance history, sorted by clock-in time.
	History(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// Status returns the denormalized "currently clocked in" flag.
	Status(ctx context.Context) (UserStatusResponse, error)
}
