package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()
}

func TestJWTRoundTrip(t *testing.T) {
	initTestJWT(t)

	addr := "0x00000000000000000000000000000000000000aa"
	token, err := GenerateJWT(addr)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != addr {
		t.Errorf("parsed address = %q, want %q", got, addr)
	}
}

func TestJWTInvalidToken(t *testing.T) {
	initTestJWT(t)

	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Error("garbage token should be rejected")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	initTestJWT(t)

	claims := jwt.MapClaims{
		"addr": "0x00000000000000000000000000000000000000aa",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(signed); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}

func TestJWTExpired(t *testing.T) {
	initTestJWT(t)

	claims := jwt.MapClaims{
		"addr": "0x00000000000000000000000000000000000000aa",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(signed); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestJWTMissingAddr(t *testing.T) {
	initTestJWT(t)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(signed); err == nil {
		t.Error("token without addr claim should be rejected")
	}
}
