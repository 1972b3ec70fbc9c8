package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	passwords := []string{
		"p1",
		"correct horse battery staple",
		"pässwörd-ünïcode",
		"",
	}

	for _, password := range passwords {
		hash, err := HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword(%q) failed: %v", password, err)
		}
		if hash == "" {
			t.Fatalf("HashPassword(%q) returned empty hash", password)
		}
		if strings.Contains(hash, password) && password != "" {
			t.Errorf("hash must not contain the plaintext")
		}
		if !VerifyPassword(password, hash) {
			t.Errorf("VerifyPassword(%q, hash) = false, want true", password)
		}
		if VerifyPassword(password+"x", hash) {
			t.Errorf("VerifyPassword with wrong password = true, want false")
		}
	}
}

func TestHashPassword_SaltedOutput(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("hash = %q, want $argon2id$v=19$ prefix", hash)
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not encoded", hash: "plaintext"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "missing segments", hash: "$argon2id$v=19$m=65536,t=1,p=4"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{name: "bad hash encoding", hash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Malformed stored hashes must fail verification, never panic.
			if VerifyPassword("password", tt.hash) {
				t.Errorf("VerifyPassword against %q = true, want false", tt.hash)
			}
		})
	}
}

func TestArgon2Parameters(t *testing.T) {
	// OWASP recommended parameters
	if argon2Time != 1 {
		t.Errorf("argon2Time = %d, want 1", argon2Time)
	}
	if argon2Memory != 64*1024 {
		t.Errorf("argon2Memory = %d, want %d", argon2Memory, 64*1024)
	}
	if argon2Threads != 4 {
		t.Errorf("argon2Threads = %d, want 4", argon2Threads)
	}
	if saltLen != 16 {
		t.Errorf("saltLen = %d, want 16", saltLen)
	}
}
