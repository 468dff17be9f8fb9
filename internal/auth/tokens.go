package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"portal-backend/internal/models"
	"portal-backend/internal/store"
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens mints and verifies the access/refresh pair. Access tokens are
// stateless; refresh tokens are signed with a distinct secret and
// persisted so they can be revoked.
type Tokens struct {
	store         store.Store
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokens(st store.Store, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		store:         st,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (t *Tokens) sign(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	issued := t.now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti keeps tokens issued within the same second
			// distinct; refresh tokens must never collide on the
			// persisted Token column.
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issued),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (t *Tokens) IssueAccessToken(user *models.User) (string, error) {
	return t.sign(user, t.accessSecret, t.accessTTL)
}

// IssueRefreshToken signs a refresh token and persists its record with
// matching expiry.
func (t *Tokens) IssueRefreshToken(ctx context.Context, user *models.User) (string, error) {
	token, err := t.sign(user, t.refreshSecret, t.refreshTTL)
	if err != nil {
		return "", err
	}
	rec := models.RefreshToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: t.now().Add(t.refreshTTL),
	}
	if err := t.store.CreateRefreshToken(ctx, &rec); err != nil {
		return "", err
	}
	return token, nil
}

// IssuePair mints both tokens and stamps the user's last login.
func (t *Tokens) IssuePair(ctx context.Context, user *models.User) (access string, refresh string, err error) {
	access, err = t.IssueAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.IssueRefreshToken(ctx, user)
	if err != nil {
		return "", "", err
	}
	if err := t.store.TouchLastLogin(ctx, user.ID, t.now()); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *Tokens) parse(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// VerifyAccessToken is a pure signature + expiry check; no store
// lookup on the hot path.
func (t *Tokens) VerifyAccessToken(token string) (*Claims, error) {
	return t.parse(token, t.accessSecret)
}

// Rotate exchanges a live refresh token for a fresh access token. The
// refresh token keeps its original expiry.
func (t *Tokens) Rotate(ctx context.Context, refresh string) (string, error) {
	claims, err := t.parse(refresh, t.refreshSecret)
	if err != nil {
		return "", ErrRefreshRevoked
	}

	rec, err := t.store.ActiveRefreshToken(ctx, refresh, t.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrRefreshRevoked
		}
		return "", err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || rec.UserID != userID {
		return "", ErrRefreshRevoked
	}

	user, err := t.store.UserByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrRefreshRevoked
		}
		return "", err
	}
	if !user.Active {
		return "", ErrRefreshRevoked
	}

	return t.IssueAccessToken(user)
}

// Revoke marks the refresh record unusable. Unknown or already revoked
// tokens are not an error.
func (t *Tokens) Revoke(ctx context.Context, refresh string) error {
	return t.store.RevokeRefreshToken(ctx, refresh, t.now())
}
