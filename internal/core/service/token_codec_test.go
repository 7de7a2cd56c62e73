package service

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crewhub/accounts-system/internal/core/domain"
)

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := NewJWTCodec("secret")

	signed, err := codec.Sign("session-token-123")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	got, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got != "session-token-123" {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestJWTCodec_RejectsTampering(t *testing.T) {
	codec := NewJWTCodec("secret")

	signed, err := codec.Sign("session-token-123")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	tampered := signed[:len(signed)-2] + "xx"
	if _, err := codec.Verify(tampered); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestJWTCodec_RejectsWrongSecret(t *testing.T) {
	signed, err := NewJWTCodec("secret-a").Sign("tok")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := NewJWTCodec("secret-b").Verify(signed); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestJWTCodec_RejectsMalformed(t *testing.T) {
	codec := NewJWTCodec("secret")

	for _, input := range []string{"", "garbage", "a.b.c"} {
		if _, err := codec.Verify(input); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("input %q: expected ErrUnauthenticated, got %v", input, err)
		}
	}
}

func TestJWTCodec_RejectsMissingID(t *testing.T) {
	codec := NewJWTCodec("secret")

	// A structurally valid token signed with the right secret but without the
	// id claim must still be rejected.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "whatever"})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := codec.Verify(signed); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestJWTCodec_RejectsForeignAlgorithm(t *testing.T) {
	codec := NewJWTCodec("secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{"id": "tok"})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := codec.Verify(signed); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
