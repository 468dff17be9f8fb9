package auth

import "errors"

var (
	ErrUserNotFound     = errors.New("auth: user not found")
	ErrUserInactive     = errors.New("auth: account is inactive")
	ErrCodeNotFound     = errors.New("auth: otp expired or not found")
	ErrCodeInvalid      = errors.New("auth: invalid otp")
	ErrAttemptsExceeded = errors.New("auth: maximum otp attempts exceeded")
	ErrTokenInvalid     = errors.New("auth: invalid token")
	ErrTokenExpired     = errors.New("auth: token expired")
	ErrRefreshRevoked   = errors.New("auth: refresh token revoked or unknown")
)
