package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/auth"
	"portal-backend/internal/httpx"
	"portal-backend/internal/store"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	Store         store.Store
	Authenticator *auth.Authenticator
	Tokens        *auth.Tokens
	CookieMaxAge  int
	Secure        bool
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func NewAuthHandler(st store.Store, authenticator *auth.Authenticator, tokens *auth.Tokens, cookieMaxAge int, secure bool) *AuthHandler {
	return &AuthHandler{
		Store:         st,
		Authenticator: authenticator,
		Tokens:        tokens,
		CookieMaxAge:  cookieMaxAge,
		Secure:        secure,
	}
}

// Login starts the passwordless flow: a one-time code is generated and
// emailed to the address.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "A valid email is required")
		return
	}

	err := retryOnce(c.Request.Context(), func(ctx context.Context) error {
		return h.Authenticator.RequestCode(ctx, req.Email)
	})
	switch {
	case err == nil:
		httpx.OK(c, http.StatusOK, gin.H{"sent": true}, "OTP sent successfully to your email")
	case errors.Is(err, auth.ErrUserNotFound):
		httpx.Fail(c, http.StatusBadRequest, "LOGIN_FAILED", "User not found")
	case errors.Is(err, auth.ErrUserInactive):
		httpx.Fail(c, http.StatusBadRequest, "ACCOUNT_INACTIVE", "Account is inactive. Please contact your administrator.")
	default:
		failUnexpected(c, "auth login", err)
	}
}

// VerifyOTP exchanges a valid code for the token pair. The refresh
// token travels only in an http-only cookie.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and OTP are required")
		return
	}

	ctx := c.Request.Context()
	if err := h.Authenticator.VerifyCode(ctx, req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, auth.ErrCodeNotFound):
			httpx.Fail(c, http.StatusBadRequest, "CODE_NOT_FOUND", "OTP expired or not found")
		case errors.Is(err, auth.ErrAttemptsExceeded):
			httpx.Fail(c, http.StatusBadRequest, "ATTEMPTS_EXCEEDED", "Maximum OTP attempts exceeded, request a new code")
		case errors.Is(err, auth.ErrCodeInvalid):
			httpx.Fail(c, http.StatusBadRequest, "INVALID_CODE", "Invalid OTP")
		default:
			failUnexpected(c, "auth verify", err)
		}
		return
	}

	user, err := h.Store.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !user.Active {
		httpx.Fail(c, http.StatusBadRequest, "LOGIN_FAILED", "User not found or inactive")
		return
	}

	access, refresh, err := h.Tokens.IssuePair(ctx, user)
	if err != nil {
		failUnexpected(c, "auth issue tokens", err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, refresh, h.CookieMaxAge, "/", "", h.Secure, true)

	httpx.OK(c, http.StatusOK, gin.H{
		"user":        user,
		"accessToken": access,
	}, "Login successful")
}

// Refresh rotates the access token off the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(refreshCookie)
	if err != nil || refresh == "" {
		httpx.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token not found")
		return
	}

	access, err := h.Tokens.Rotate(c.Request.Context(), refresh)
	if err != nil {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(refreshCookie, "", -1, "/", "", h.Secure, true)
		if errors.Is(err, auth.ErrRefreshRevoked) {
			httpx.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired refresh token")
			return
		}
		failUnexpected(c, "auth refresh", err)
		return
	}

	httpx.OK(c, http.StatusOK, gin.H{"accessToken": access}, "Token refreshed successfully")
}

// Logout revokes the refresh token and clears the cookie. It succeeds
// locally even if revocation fails server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	refresh, _ := c.Cookie(refreshCookie)
	if refresh == "" {
		var req logoutRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refresh = req.RefreshToken
		}
	}

	if refresh != "" {
		if err := h.Tokens.Revoke(c.Request.Context(), refresh); err != nil {
			// Logout still succeeds locally; the token ages out on its own.
			log.Printf("auth logout: revoke failed: %v", err)
		}
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.Secure, true)
	httpx.OK(c, http.StatusOK, gin.H{}, "Logged out successfully")
}

// Me returns the full identity projection for the bearer.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.Store.UserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Fail(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		failUnexpected(c, "auth me", err)
		return
	}

	httpx.OK(c, http.StatusOK, user, "User details retrieved successfully")
}
