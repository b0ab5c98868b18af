package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendify/attendify-backend-go/internal/domain/attendance"
	"github.com/attendify/attendify-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userStatusRepository struct {
	db *database.DB
}

func NewUserStatusRepository(db *database.DB) attendance.UserStatusRepository {
	return &userStatusRepository{db: db}
}

// Get implements attendance.UserStatusRepository. A user with no row has
// never clocked in and reads as not clocked in.
func (r *userStatusRepository) Get(ctx context.Context, userID string) (attendance.UserStatus, error) {
	q := GetQuerier(ctx, r.db)

	var status attendance.UserStatus
	err := q.QueryRow(ctx,
		`SELECT user_id, is_clocked_in, updated_at FROM user_status WHERE user_id = $1`,
		userID,
	).Scan(&status.UserID, &status.IsClockedIn, &status.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.UserStatus{UserID: userID, IsClockedIn: false}, nil
		}
		return attendance.UserStatus{}, fmt.Errorf("failed to get user status: %w", err)
	}

	return status, nil
}

// lockUserStatus upserts the user's status row and takes a row lock on it for
// the rest of the transaction. Submit transactions call this first so that all
// clock events for one user serialize on the same lock.
func lockUserStatus(ctx context.Context, db *database.DB, userID string) error {
	q := GetQuerier(ctx, db)

	_, err := q.Exec(ctx,
		`INSERT INTO user_status (user_id, is_clocked_in) VALUES ($1, FALSE)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure user status row: %w", err)
	}

	var clockedIn bool
	err = q.QueryRow(ctx,
		`SELECT is_clocked_in FROM user_status WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&clockedIn)
	if err != nil {
		return fmt.Errorf("failed to lock user status: %w", err)
	}

	return nil
}

// setUserStatus flips the flag inside the submit transaction.
func setUserStatus(ctx context.Context, db *database.DB, userID string, clockedIn bool) error {
	q := GetQuerier(ctx, db)

	tag, err := q.Exec(ctx,
		`UPDATE user_status SET is_clocked_in = $1, updated_at = NOW() WHERE user_id = $2`,
		clockedIn, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user status row missing for %s", userID)
	}

	return nil
}
