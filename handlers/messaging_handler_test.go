package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signTestToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "4f1c2a9e-9d3b-4d1e-8a55-2f6f0c9b7e10",
		"email":   "athlete@athlixir.com",
		"role":    "athlete",
		"exp":     exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseTokenValid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signTestToken(t, "test-secret", time.Now().Add(time.Hour))
	claims, err := parseToken(signed)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if claims["email"] != "athlete@athlixir.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if claims["role"] != "athlete" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}

func TestParseTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signTestToken(t, "test-secret", time.Now().Add(-time.Hour))
	_, err := parseToken(signed)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired-token error, got %v", err)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signTestToken(t, "some-other-secret", time.Now().Add(time.Hour))
	if _, err := parseToken(signed); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := parseToken("not-a-jwt"); err == nil {
		t.Fatalf("malformed token must be rejected")
	}
}
