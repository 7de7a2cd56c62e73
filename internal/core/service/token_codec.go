package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crewhub/accounts-system/internal/core/domain"
)

// JWTCodec signs session tokens into an HS256 envelope whose only claim is
// the wrapped token itself. The envelope deliberately carries no expiry:
// validity is decided by the session store, so revoking a session invalidates
// every outstanding envelope for it at once.
type JWTCodec struct {
	secret []byte
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret)}
}

func (c *JWTCodec) Sign(sessionToken string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": sessionToken,
	})

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Verify(signedToken string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signedToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrUnauthenticated
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}
