package secrets

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
	}
}

func TestHashVerify(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("482913")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "482913" {
		t.Fatal("digest equals plaintext")
	}
	if !hasher.Verify("482913", digest) {
		t.Fatal("correct code did not verify")
	}
	if hasher.Verify("482914", digest) {
		t.Fatal("wrong code verified")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	hasher := NewHasher(99)
	if hasher.Cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default %d", hasher.Cost, bcrypt.DefaultCost)
	}
}
