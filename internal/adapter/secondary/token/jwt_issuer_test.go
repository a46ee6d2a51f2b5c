package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
)

func TestIssueAndVerify(t *testing.T) {
	j, err := NewJWTIssuer([]byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	user := &core.User{ID: uuid.New(), FullName: "Ada Admin", Role: core.RoleAdmin}
	signed, expiresAt, err := j.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expected expiry in the future")
	}

	actor, err := j.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if actor.ID != user.ID || actor.Role != core.RoleAdmin || actor.Name != "Ada Admin" {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestVerify_Rejects(t *testing.T) {
	j, _ := NewJWTIssuer([]byte("test-secret"), time.Hour)
	user := &core.User{ID: uuid.New(), FullName: "Cara Customer", Role: core.RoleCustomer}

	other, _ := NewJWTIssuer([]byte("other-secret"), time.Hour)
	foreign, _, _ := other.Issue(user)

	expiredIssuer, _ := NewJWTIssuer([]byte("test-secret"), time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, _ := expiredIssuer.Issue(user)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "root",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID.String(),
			Issuer:  issuer,
		},
	}).SignedString([]byte("test-secret"))

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expired,
		"alg none":     noneToken,
		"unknown role": badRole,
		"missing exp":  noExpiry,
	}
	for name, raw := range cases {
		_, err := j.Verify(raw)
		if !errors.Is(err, core.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestNewJWTIssuer_RefusesEmptySecret(t *testing.T) {
	if _, err := NewJWTIssuer(nil, time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewJWTIssuer([]byte("s"), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
