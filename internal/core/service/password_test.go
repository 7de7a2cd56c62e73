package service

import "testing"

func TestHashPassword_Deterministic(t *testing.T) {
	a := HashPassword("hunter2", "salt")
	b := HashPassword("hunter2", "salt")
	if a != b {
		t.Fatalf("hash must be deterministic: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashPassword_SaltAndPasswordSensitive(t *testing.T) {
	base := HashPassword("hunter2", "salt")
	if HashPassword("hunter2", "other-salt") == base {
		t.Fatalf("different salt must change the hash")
	}
	if HashPassword("hunter3", "salt") == base {
		t.Fatalf("different password must change the hash")
	}
}
