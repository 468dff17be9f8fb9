package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"portal-backend/internal/models"
)

func TestConsumeOTPExactlyOnce(t *testing.T) {
	st := NewMem()
	ctx := context.Background()

	otp := models.OTP{Email: "a@co.com", CodeHash: "digest", ExpiresAt: time.Now().Add(time.Minute)}
	if err := st.ReplaceOTP(ctx, &otp); err != nil {
		t.Fatalf("ReplaceOTP: %v", err)
	}

	won, err := st.ConsumeOTP(ctx, otp.ID)
	if err != nil || !won {
		t.Fatalf("first consume: won=%v err=%v", won, err)
	}
	won, err = st.ConsumeOTP(ctx, otp.ID)
	if err != nil || won {
		t.Fatalf("second consume: won=%v err=%v, want lost", won, err)
	}
}

func TestReplaceOTPKeepsOnePerEmail(t *testing.T) {
	st := NewMem()
	ctx := context.Background()

	first := models.OTP{Email: "a@co.com", CodeHash: "one", ExpiresAt: time.Now().Add(time.Minute)}
	second := models.OTP{Email: "a@co.com", CodeHash: "two", ExpiresAt: time.Now().Add(time.Minute)}
	if err := st.ReplaceOTP(ctx, &first); err != nil {
		t.Fatalf("first ReplaceOTP: %v", err)
	}
	if err := st.ReplaceOTP(ctx, &second); err != nil {
		t.Fatalf("second ReplaceOTP: %v", err)
	}

	live, err := st.LiveOTP(ctx, "a@co.com", time.Now())
	if err != nil {
		t.Fatalf("LiveOTP: %v", err)
	}
	if live.CodeHash != "two" {
		t.Fatalf("live hash = %q, want the replacement", live.CodeHash)
	}
	if won, _ := st.ConsumeOTP(ctx, first.ID); won {
		t.Fatal("replaced code was still consumable")
	}
}

func TestReplaceOTPConcurrentIssuersAllSucceed(t *testing.T) {
	st := NewMem()
	ctx := context.Background()

	const issuers = 8
	var wg sync.WaitGroup
	errs := make([]error, issuers)
	for i := 0; i < issuers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			otp := models.OTP{Email: "a@co.com", CodeHash: "digest", ExpiresAt: time.Now().Add(time.Minute)}
			errs[i] = st.ReplaceOTP(ctx, &otp)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("issuer %d: %v", i, err)
		}
	}
	if _, err := st.LiveOTP(ctx, "a@co.com", time.Now()); err != nil {
		t.Fatalf("no live code after concurrent issues: %v", err)
	}
}

func TestLiveOTPTreatsExpiredAsAbsent(t *testing.T) {
	st := NewMem()
	ctx := context.Background()

	otp := models.OTP{Email: "a@co.com", CodeHash: "digest", ExpiresAt: time.Now().Add(-time.Second)}
	if err := st.ReplaceOTP(ctx, &otp); err != nil {
		t.Fatalf("ReplaceOTP: %v", err)
	}
	if _, err := st.LiveOTP(ctx, "a@co.com", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateAttendanceDuplicateDay(t *testing.T) {
	st := NewMem()
	ctx := context.Background()
	userID := uuid.New()
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local)

	first := models.Attendance{UserID: userID, Date: day, CheckIn: day.Add(9 * time.Hour), Status: models.AttendancePresent}
	if err := st.CreateAttendance(ctx, &first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := models.Attendance{UserID: userID, Date: day, CheckIn: day.Add(10 * time.Hour), Status: models.AttendanceLate}
	if err := st.CreateAttendance(ctx, &dup); !errors.Is(err, ErrDuplicateDay) {
		t.Fatalf("err = %v, want ErrDuplicateDay", err)
	}
}

func TestConcurrentCheckInOneWinner(t *testing.T) {
	st := NewMem()
	ctx := context.Background()
	userID := uuid.New()
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := models.Attendance{UserID: userID, Date: day, CheckIn: day.Add(9 * time.Hour), Status: models.AttendancePresent}
			errs[i] = st.CreateAttendance(ctx, &rec)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else if !errors.Is(err, ErrDuplicateDay) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}
}

func TestCloseAttendanceConditional(t *testing.T) {
	st := NewMem()
	ctx := context.Background()
	userID := uuid.New()
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local)

	rec := models.Attendance{UserID: userID, Date: day, CheckIn: day.Add(9 * time.Hour), Status: models.AttendancePresent}
	if err := st.CreateAttendance(ctx, &rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	out := day.Add(17 * time.Hour)
	closed, err := st.CloseAttendance(ctx, rec.ID, out, 8)
	if err != nil || !closed {
		t.Fatalf("first close: closed=%v err=%v", closed, err)
	}
	closed, err = st.CloseAttendance(ctx, rec.ID, out.Add(time.Hour), 9)
	if err != nil || closed {
		t.Fatalf("second close: closed=%v err=%v, want refused", closed, err)
	}

	stored, err := st.AttendanceForDay(ctx, userID, day)
	if err != nil {
		t.Fatalf("AttendanceForDay: %v", err)
	}
	if stored.WorkHours == nil || *stored.WorkHours != 8 {
		t.Fatalf("work hours = %v, want the first close to stick", stored.WorkHours)
	}
}

func TestActiveRefreshTokenFiltering(t *testing.T) {
	st := NewMem()
	ctx := context.Background()
	now := time.Now()

	live := models.RefreshToken{UserID: uuid.New(), Token: "live", ExpiresAt: now.Add(time.Hour)}
	expired := models.RefreshToken{UserID: uuid.New(), Token: "expired", ExpiresAt: now.Add(-time.Hour)}
	if err := st.CreateRefreshToken(ctx, &live); err != nil {
		t.Fatalf("create live: %v", err)
	}
	if err := st.CreateRefreshToken(ctx, &expired); err != nil {
		t.Fatalf("create expired: %v", err)
	}

	if _, err := st.ActiveRefreshToken(ctx, "live", now); err != nil {
		t.Fatalf("live lookup: %v", err)
	}
	if _, err := st.ActiveRefreshToken(ctx, "expired", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired lookup err = %v, want ErrNotFound", err)
	}

	if err := st.RevokeRefreshToken(ctx, "live", now); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := st.ActiveRefreshToken(ctx, "live", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("revoked lookup err = %v, want ErrNotFound", err)
	}
	if err := st.RevokeRefreshToken(ctx, "live", now); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
}
