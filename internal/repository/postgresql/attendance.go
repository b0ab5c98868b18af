package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendify/attendify-backend-go/internal/domain/attendance"
	"github.com/attendify/attendify-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	id, user_id,
	clock_in, clock_in_latitude, clock_in_longitude, clock_in_photo_url,
	clock_out, clock_out_latitude, clock_out_longitude, clock_out_photo_url,
	created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID,
		&att.ClockIn, &att.ClockInLatitude, &att.ClockInLongitude, &att.ClockInPhotoURL,
		&att.ClockOut, &att.ClockOutLatitude, &att.ClockOutLongitude, &att.ClockOutPhotoURL,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// SubmitClockIn implements attendance.AttendanceRepository.
//
// One transaction: lock the user's status row, verify no open session exists,
// insert the record and flip the flag. Locking first serializes concurrent
// submissions for the same user, so two near-simultaneous clock-ins cannot
// both observe "no open session".
func (a *attendanceRepository) SubmitClockIn(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	var created attendance.Attendance

	err := WithTransaction(ctx, a.db, func(ctx context.Context) error {
		if err := lockUserStatus(ctx, a.db, att.UserID); err != nil {
			return err
		}

		open, err := a.openSessionInTx(ctx, att.UserID)
		if err != nil {
			return err
		}
		if open != nil {
			return attendance.ErrAlreadyClockedIn
		}

		q := GetQuerier(ctx, a.db)

		query := `
			INSERT INTO attendances (
				user_id, clock_in, clock_in_latitude, clock_in_longitude, clock_in_photo_url
			) VALUES (
				$1, $2, $3, $4, $5
			) RETURNING` + attendanceColumns

		created, err = scanAttendance(q.QueryRow(ctx, query,
			att.UserID,
			att.ClockIn,
			att.ClockInLatitude,
			att.ClockInLongitude,
			att.ClockInPhotoURL,
		))
		if err != nil {
			return fmt.Errorf("failed to create attendance: %w", err)
		}

		return setUserStatus(ctx, a.db, att.UserID, true)
	})
	if err != nil {
		return attendance.Attendance{}, wrapSubmitErr(err)
	}

	return created, nil
}

// SubmitClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) SubmitClockOut(ctx context.Context, out attendance.ClockOutUpdate) (attendance.Attendance, error) {
	var updated attendance.Attendance

	err := WithTransaction(ctx, a.db, func(ctx context.Context) error {
		if err := lockUserStatus(ctx, a.db, out.UserID); err != nil {
			return err
		}

		open, err := a.openSessionInTx(ctx, out.UserID)
		if err != nil {
			return err
		}
		if open == nil {
			return attendance.ErrNotClockedIn
		}

		q := GetQuerier(ctx, a.db)

		query := `
			UPDATE attendances
			SET clock_out = $1,
				clock_out_latitude = $2,
				clock_out_longitude = $3,
				clock_out_photo_url = $4,
				updated_at = NOW()
			WHERE id = $5
			RETURNING` + attendanceColumns

		updated, err = scanAttendance(q.QueryRow(ctx, query,
			out.ClockOut,
			out.Latitude,
			out.Longitude,
			out.PhotoURL,
			open.ID,
		))
		if err != nil {
			return fmt.Errorf("failed to close attendance: %w", err)
		}

		return setUserStatus(ctx, a.db, out.UserID, false)
	})
	if err != nil {
		return attendance.Attendance{}, wrapSubmitErr(err)
	}

	return updated, nil
}

// openSessionInTx returns the most recent open record, or nil when there is
// none. Must run while the status row is locked.
func (a *attendanceRepository) openSessionInTx(ctx context.Context, userID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &att, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, userID string) (attendance.Attendance, error) {
	open, err := a.openSessionInTx(ctx, userID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if open == nil {
		return attendance.Attendance{}, attendance.ErrNotClockedIn
	}
	return *open, nil
}

// GetLatestByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetLatestByUser(ctx context.Context, userID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		ORDER BY clock_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get latest attendance: %w", err)
	}

	return att, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, sort attendance.SortOrder) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	direction := "DESC"
	if sort == attendance.SortOldestFirst {
		direction = "ASC"
	}

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		ORDER BY clock_in ` + direction

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var atts []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		atts = append(atts, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendances: %w", err)
	}

	return atts, nil
}

// wrapSubmitErr keeps domain preconditions as-is and tags everything else as a
// retryable store failure.
func wrapSubmitErr(err error) error {
	if errors.Is(err, attendance.ErrAlreadyClockedIn) || errors.Is(err, attendance.ErrNotClockedIn) {
		return err
	}
	return fmt.Errorf("%w: %v", attendance.ErrTransientWrite, err)
}
