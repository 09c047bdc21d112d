package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

func TestSessionService_IssueThenVerify(t *testing.T) {
	svc := NewSessionService("secret", time.Hour, nil, discardLogger)

	token, session, err := svc.Issue(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" || session.TokenID == "" {
		t.Fatalf("expected token and token id")
	}
	if got := time.Until(session.ExpiresAt); got < 59*time.Minute || got > time.Hour {
		t.Fatalf("unexpected expiry window: %v", got)
	}

	verified, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if verified.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", verified.Email)
	}
	if verified.TokenID != session.TokenID {
		t.Fatalf("token id mismatch")
	}
}

func TestSessionService_DefaultTTL(t *testing.T) {
	svc := NewSessionService("secret", 0, nil, discardLogger)
	if svc.TTL() != 365*24*time.Hour {
		t.Fatalf("expected one year default, got %v", svc.TTL())
	}
}

func TestSessionService_Issue_Validation(t *testing.T) {
	svc := NewSessionService("secret", time.Hour, nil, discardLogger)

	for _, email := range []string{"", "  ", "nope"} {
		if _, _, err := svc.Issue(context.Background(), email); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("Issue(%q): expected ErrInvalidRequest, got %v", email, err)
		}
	}
}

func TestSessionService_Verify_Rejections(t *testing.T) {
	svc := NewSessionService("secret", time.Hour, nil, discardLogger)
	good, _, err := svc.Issue(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	otherKey, _, _ := NewSessionService("other", time.Hour, nil, discardLogger).Issue(context.Background(), "alice@example.com")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, _ := expired.SignedString([]byte("secret"))

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{Email: "alice@example.com"})
	noExpiryToken, _ := noExpiry.SignedString([]byte("secret"))

	noEmail := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	noEmailToken, _ := noEmail.SignedString([]byte("secret"))

	wrongAlg := jwt.NewWithClaims(jwt.SigningMethodHS512, sessionClaims{
		Email:            "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	wrongAlgToken, _ := wrongAlg.SignedString([]byte("secret"))

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"tampered":     good + "x",
		"other secret": otherKey,
		"expired":      expiredToken,
		"no expiry":    noExpiryToken,
		"no email":     noEmailToken,
		"wrong alg":    wrongAlgToken,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestSessionService_Revoke(t *testing.T) {
	store := newStubRevocations()
	svc := NewSessionService("secret", time.Hour, store, discardLogger)

	token, session, err := svc.Issue(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	ttl, ok := store.revoked[session.TokenID]
	if !ok {
		t.Fatalf("expected token id to be revoked")
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("revocation ttl should cover the remaining lifetime, got %v", ttl)
	}

	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestSessionService_Revoke_IgnoresInvalidTokens(t *testing.T) {
	store := newStubRevocations()
	svc := NewSessionService("secret", time.Hour, store, discardLogger)

	if err := svc.Revoke(context.Background(), "garbage"); err != nil {
		t.Fatalf("expected nil for invalid token, got %v", err)
	}
	if len(store.revoked) != 0 {
		t.Fatalf("nothing should be revoked")
	}
}

func TestSessionService_Verify_FailsOpenOnStoreError(t *testing.T) {
	store := newStubRevocations()
	store.checkErr = errors.New("redis down")
	svc := NewSessionService("secret", time.Hour, store, discardLogger)

	token, _, err := svc.Issue(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Verify(context.Background(), token); err != nil {
		t.Fatalf("expected token to be accepted while the store is down, got %v", err)
	}
}
