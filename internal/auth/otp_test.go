package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"portal-backend/internal/models"
	"portal-backend/internal/secrets"
	"portal-backend/internal/store"
)

type fakeSender struct {
	lastTo   string
	lastCode string
	sent     int
}

func (f *fakeSender) SendCode(ctx context.Context, to string, code string, expiresAt time.Time) error {
	f.lastTo = to
	f.lastCode = code
	f.sent++
	return nil
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *store.MemStore, *fakeSender) {
	t.Helper()
	st := store.NewMem()
	sender := &fakeSender{}
	a := NewAuthenticator(st, secrets.NewHasher(bcrypt.MinCost), sender, 10*time.Minute, 3)
	return a, st, sender
}

func seedUser(st *store.MemStore, email string, active bool) *models.User {
	return st.AddUser(&models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleEmployee,
		Active:    active,
	})
}

func TestRequestCodeUnknownUser(t *testing.T) {
	a, _, _ := newTestAuthenticator(t)

	err := a.RequestCode(context.Background(), "nobody@co.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestRequestCodeInactiveUser(t *testing.T) {
	a, st, _ := newTestAuthenticator(t)
	seedUser(st, "gone@co.com", false)

	err := a.RequestCode(context.Background(), "gone@co.com")
	if !errors.Is(err, ErrUserInactive) {
		t.Fatalf("err = %v, want ErrUserInactive", err)
	}
}

func TestRequestCodeNormalizesEmail(t *testing.T) {
	a, st, sender := newTestAuthenticator(t)
	seedUser(st, "a@co.com", true)

	if err := a.RequestCode(context.Background(), "  A@CO.COM "); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	if sender.lastTo != "a@co.com" {
		t.Fatalf("sent to %q, want a@co.com", sender.lastTo)
	}
	if err := a.VerifyCode(context.Background(), "A@Co.Com", sender.lastCode); err != nil {
		t.Fatalf("VerifyCode with differently-cased email: %v", err)
	}
}

func TestVerifyCodeExactlyOnce(t *testing.T) {
	a, st, sender := newTestAuthenticator(t)
	seedUser(st, "a@co.com", true)
	ctx := context.Background()

	if err := a.RequestCode(ctx, "a@co.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	code := sender.lastCode

	if err := a.VerifyCode(ctx, "a@co.com", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	err := a.VerifyCode(ctx, "a@co.com", code)
	if !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("second verify err = %v, want ErrCodeNotFound", err)
	}
}

func TestVerifyCodeAttemptCap(t *testing.T) {
	a, st, sender := newTestAuthenticator(t)
	seedUser(st, "a@co.com", true)
	ctx := context.Background()

	if err := a.RequestCode(ctx, "a@co.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	code := sender.lastCode
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < 3; i++ {
		if err := a.VerifyCode(ctx, "a@co.com", wrong); !errors.Is(err, ErrCodeInvalid) {
			t.Fatalf("attempt %d err = %v, want ErrCodeInvalid", i+1, err)
		}
	}

	// Budget exhausted: even the correct code is refused and the
	// record is deleted.
	if err := a.VerifyCode(ctx, "a@co.com", code); !errors.Is(err, ErrAttemptsExceeded) {
		t.Fatalf("err = %v, want ErrAttemptsExceeded", err)
	}
	if err := a.VerifyCode(ctx, "a@co.com", code); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("err after exhaustion = %v, want ErrCodeNotFound", err)
	}
}

func TestVerifyCodeIncrementsAttempts(t *testing.T) {
	a, st, sender := newTestAuthenticator(t)
	seedUser(st, "a@co.com", true)
	ctx := context.Background()

	if err := a.RequestCode(ctx, "a@co.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	wrong := "000000"
	if wrong == sender.lastCode {
		wrong = "000001"
	}
	if err := a.VerifyCode(ctx, "a@co.com", wrong); !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("err = %v, want ErrCodeInvalid", err)
	}

	otp, err := st.LiveOTP(ctx, "a@co.com", time.Now())
	if err != nil {
		t.Fatalf("LiveOTP: %v", err)
	}
	if otp.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", otp.Attempts)
	}
}

func TestRequestCodeReplacesLiveCode(t *testing.T) {
	a, st, sender := newTestAuthenticator(t)
	seedUser(st, "a@co.com", true)
	ctx := context.Background()

	if err := a.RequestCode(ctx, "a@co.com"); err != nil {
		t.Fatalf("first RequestCode: %v", err)
	}
	first := sender.lastCode

	if err := a.ResendCode(ctx, "a@co.com"); err != nil {
		t.Fatalf("ResendCode: %v", err)
	}
	second := sender.lastCode

	if first == second {
		t.Skip("codes collided; nothing to distinguish")
	}
	if err := a.VerifyCode(ctx, "a@co.com", first); err == nil {
		t.Fatal("stale code verified after replacement")
	}
	if err := a.VerifyCode(ctx, "a@co.com", second); err != nil {
		t.Fatalf("fresh code did not verify: %v", err)
	}
}

func TestVerifyCodeExpired(t *testing.T) {
	a, st, sender := newTestAuthenticator(t)
	seedUser(st, "a@co.com", true)
	ctx := context.Background()

	issued := time.Now()
	a.now = func() time.Time { return issued }
	if err := a.RequestCode(ctx, "a@co.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}

	a.now = func() time.Time { return issued.Add(11 * time.Minute) }
	err := a.VerifyCode(ctx, "a@co.com", sender.lastCode)
	if !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("err = %v, want ErrCodeNotFound for expired code", err)
	}
}
