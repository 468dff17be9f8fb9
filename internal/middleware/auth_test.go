package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/auth"
	"portal-backend/internal/models"
	"portal-backend/internal/store"
)

func newGuardedRouter(t *testing.T) (*gin.Engine, *auth.Tokens, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMem()
	user := st.AddUser(&models.User{Email: "ada@co.com", Role: models.RoleEmployee, Active: true})
	tokens := auth.NewTokens(st, "access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	router := gin.New()
	router.GET("/ping", AuthRequired(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(ContextUserID)})
	})
	router.GET("/hr-only", AuthRequired(tokens), RequireAnyRole(models.RoleAdmin, models.RoleHR), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, tokens, user
}

func get(router http.Handler, path string, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	router, tokens, user := newGuardedRouter(t)

	if rec := get(router, "/ping", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no header status = %d, want 401", rec.Code)
	}
	if rec := get(router, "/ping", "Token abc"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad scheme status = %d, want 401", rec.Code)
	}
	if rec := get(router, "/ping", "Bearer garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", rec.Code)
	}

	access, err := tokens.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if rec := get(router, "/ping", "Bearer "+access); rec.Code != http.StatusOK {
		t.Fatalf("valid token status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestRequireAnyRole(t *testing.T) {
	router, tokens, user := newGuardedRouter(t)

	access, err := tokens.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if rec := get(router, "/hr-only", "Bearer "+access); rec.Code != http.StatusForbidden {
		t.Fatalf("employee on hr route status = %d, want 403", rec.Code)
	}

	user.Role = models.RoleHR
	access, err = tokens.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if rec := get(router, "/hr-only", "Bearer "+access); rec.Code != http.StatusOK {
		t.Fatalf("hr on hr route status = %d", rec.Code)
	}
}
