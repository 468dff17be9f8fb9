package secrets

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GenerateCode returns a 6-digit numeric one-time code, zero padded.
func GenerateCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := binary.BigEndian.Uint64(buf) % 1000000
	return fmt.Sprintf("%06d", code), nil
}

// Hasher wraps bcrypt with a configurable cost. Codes are short-lived
// and rate-limited, so the default cost is enough to keep offline
// guessing slower than the expiry window.
type Hasher struct {
	Cost int
}

func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{Cost: cost}
}

func (h Hasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h Hasher) Verify(secret string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
