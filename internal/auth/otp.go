package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"portal-backend/internal/models"
	"portal-backend/internal/secrets"
	"portal-backend/internal/store"
)

// Sender delivers the plaintext one-time code to the user. Transport
// (email, SMS) is a collaborator, not part of this package.
type Sender interface {
	SendCode(ctx context.Context, to string, code string, expiresAt time.Time) error
}

// Authenticator runs the one-time-code login flow: issue, deliver,
// verify, consume. All state lives in the store; concurrent requests
// are serialized by its constraints, not here.
type Authenticator struct {
	store       store.Store
	hasher      secrets.Hasher
	sender      Sender
	window      time.Duration
	maxAttempts int
	now         func() time.Time
}

func NewAuthenticator(st store.Store, hasher secrets.Hasher, sender Sender, window time.Duration, maxAttempts int) *Authenticator {
	return &Authenticator{
		store:       st,
		hasher:      hasher,
		sender:      sender,
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequestCode issues a fresh code for the email, replacing any live
// one, and hands the plaintext to the delivery collaborator.
func (a *Authenticator) RequestCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := a.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !user.Active {
		return ErrUserInactive
	}

	code, err := secrets.GenerateCode()
	if err != nil {
		return err
	}
	codeHash, err := a.hasher.Hash(code)
	if err != nil {
		return err
	}

	expiresAt := a.now().Add(a.window)
	otp := models.OTP{
		Email:     email,
		CodeHash:  codeHash,
		Attempts:  0,
		ExpiresAt: expiresAt,
	}
	if err := a.store.ReplaceOTP(ctx, &otp); err != nil {
		return err
	}

	return a.sender.SendCode(ctx, email, code, expiresAt)
}

// ResendCode issues a new code with a fresh attempt budget. Rate
// limiting across resends is left to the edge.
func (a *Authenticator) ResendCode(ctx context.Context, email string) error {
	return a.RequestCode(ctx, email)
}

// VerifyCode checks the submitted code against the live record and
// consumes it on success. A consumed code can never verify again.
func (a *Authenticator) VerifyCode(ctx context.Context, email string, submitted string) error {
	email = normalizeEmail(email)

	otp, err := a.store.LiveOTP(ctx, email, a.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCodeNotFound
		}
		return err
	}

	if otp.Attempts >= a.maxAttempts {
		if _, err := a.store.ConsumeOTP(ctx, otp.ID); err != nil {
			return err
		}
		return ErrAttemptsExceeded
	}

	if !a.hasher.Verify(submitted, otp.CodeHash) {
		if err := a.store.BumpOTPAttempts(ctx, otp.ID); err != nil {
			return err
		}
		return ErrCodeInvalid
	}

	consumed, err := a.store.ConsumeOTP(ctx, otp.ID)
	if err != nil {
		return err
	}
	if !consumed {
		// Another verification won the delete.
		return ErrCodeNotFound
	}
	return nil
}
