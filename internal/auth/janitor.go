package auth

import (
	"context"
	"log"
	"time"

	"portal-backend/internal/store"
)

// StartJanitor sweeps expired one-time codes and dead refresh tokens
// in the background until ctx is done.
func StartJanitor(ctx context.Context, st store.Store, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now()
				if err := st.DeleteExpiredOTPs(ctx, now); err != nil {
					log.Printf("janitor: otp sweep failed: %v", err)
				}
				if err := st.DeleteExpiredRefreshTokens(ctx, now); err != nil {
					log.Printf("janitor: refresh token sweep failed: %v", err)
				}
			}
		}
	}()
}
