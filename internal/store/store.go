package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"portal-backend/internal/models"
)

var (
	ErrNotFound     = errors.New("store: record not found")
	ErrDuplicateDay = errors.New("store: attendance exists for day")
)

// Store is the single writer of record for all cross-request state.
// Every component receives it explicitly; atomicity for concurrent
// handlers comes from constraints and conditional writes here, not
// from locks held in the caller.
type Store interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// ReplaceOTP atomically removes any live code for the email and
	// inserts the new one.
	ReplaceOTP(ctx context.Context, otp *models.OTP) error
	// LiveOTP returns the unexpired code for the email; an expired row
	// is reported as ErrNotFound.
	LiveOTP(ctx context.Context, email string, now time.Time) (*models.OTP, error)
	BumpOTPAttempts(ctx context.Context, id uint) error
	// ConsumeOTP deletes the row by id and reports whether this caller
	// won the delete, so two concurrent verifications cannot both
	// succeed.
	ConsumeOTP(ctx context.Context, id uint) (bool, error)
	DeleteExpiredOTPs(ctx context.Context, now time.Time) error

	CreateRefreshToken(ctx context.Context, rec *models.RefreshToken) error
	// ActiveRefreshToken returns the record only if unexpired and
	// unrevoked.
	ActiveRefreshToken(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error)
	// RevokeRefreshToken is idempotent; revoking an unknown or already
	// revoked token is not an error.
	RevokeRefreshToken(ctx context.Context, token string, at time.Time) error
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error

	// CreateAttendance inserts the day's record, failing with
	// ErrDuplicateDay if one already exists for (user, date).
	CreateAttendance(ctx context.Context, rec *models.Attendance) error
	AttendanceForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*models.Attendance, error)
	// CloseAttendance sets check-out and work hours only if the record
	// is still open, and reports whether the write applied.
	CloseAttendance(ctx context.Context, id uuid.UUID, out time.Time, hours float64) (bool, error)

	LeaveTypes(ctx context.Context) ([]models.LeaveType, error)
	CreateLeaveRequest(ctx context.Context, req *models.LeaveRequest) error
	LeaveRequestsByUser(ctx context.Context, userID uuid.UUID) ([]models.LeaveRequest, error)

	Ping(ctx context.Context) error
}
