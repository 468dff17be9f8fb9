package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portal-backend/internal/httpx"
	"portal-backend/internal/middleware"
)

// currentUserID pulls the authenticated user id set by the session
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func isTransient(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// retryOnce re-runs the operation a single time when the store timed
// out; domain errors surface immediately.
func retryOnce(ctx context.Context, op func(context.Context) error) error {
	err := op(ctx)
	if err != nil && isTransient(err) {
		err = op(ctx)
	}
	return err
}

// failUnexpected logs the internals server-side and returns a generic
// message to the client.
func failUnexpected(c *gin.Context, scope string, err error) {
	if isTransient(err) {
		httpx.Fail(c, http.StatusServiceUnavailable, "TRANSIENT", "Service temporarily unavailable, please retry")
		return
	}
	log.Printf("%s: %v", scope, err)
	httpx.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}
