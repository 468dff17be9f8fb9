package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"portal-backend/internal/models"
	"portal-backend/internal/store"
)

var (
	ErrAlreadyCheckedIn  = errors.New("attendance: already checked in today")
	ErrNotCheckedIn      = errors.New("attendance: not checked in today")
	ErrAlreadyCheckedOut = errors.New("attendance: already checked out today")
)

// Service drives the daily NotCheckedIn -> CheckedIn -> CheckedOut
// transitions. Both transitions are conditional writes in the store,
// so concurrent double-clicks collapse to one winner.
type Service struct {
	store        store.Store
	cutoffHour   int
	cutoffMinute int
	now          func() time.Time
}

// NewService parses cutoff in "15:04" form; a bad value falls back to
// 09:30.
func NewService(st store.Store, cutoff string) *Service {
	hour, minute := 9, 30
	if parsed, err := time.Parse("15:04", cutoff); err == nil {
		hour, minute = parsed.Hour(), parsed.Minute()
	}
	return &Service{store: st, cutoffHour: hour, cutoffMinute: minute, now: time.Now}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *Service) statusFor(checkIn time.Time) string {
	cutoff := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		s.cutoffHour, s.cutoffMinute, 0, 0, checkIn.Location())
	if checkIn.After(cutoff) {
		return models.AttendanceLate
	}
	return models.AttendancePresent
}

// CheckIn creates today's record. The (user, day) unique constraint is
// the only creation gate.
func (s *Service) CheckIn(ctx context.Context, userID uuid.UUID) (*models.Attendance, error) {
	now := s.now()
	rec := models.Attendance{
		UserID:  userID,
		Date:    dayOf(now),
		CheckIn: now,
		Status:  s.statusFor(now),
	}
	if err := s.store.CreateAttendance(ctx, &rec); err != nil {
		if errors.Is(err, store.ErrDuplicateDay) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return &rec, nil
}

// CheckOut closes today's record once, deriving work hours from the
// check-in/check-out interval.
func (s *Service) CheckOut(ctx context.Context, userID uuid.UUID) (*models.Attendance, error) {
	now := s.now()
	day := dayOf(now)

	rec, err := s.store.AttendanceForDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	if rec.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	out := now
	if out.Before(rec.CheckIn) {
		out = rec.CheckIn
	}
	hours := out.Sub(rec.CheckIn).Hours()

	closed, err := s.store.CloseAttendance(ctx, rec.ID, out, hours)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, ErrAlreadyCheckedOut
	}

	rec.CheckOut = &out
	rec.WorkHours = &hours
	return rec, nil
}

// Today returns today's record, or nil without error when the user has
// not checked in.
func (s *Service) Today(ctx context.Context, userID uuid.UUID) (*models.Attendance, error) {
	rec, err := s.store.AttendanceForDay(ctx, userID, dayOf(s.now()))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}
