package store

import (
	"strings"
	"testing"
	"time"
)

func TestJWTSessionRoundTrip(t *testing.T) {
	sessions, err := NewJWTSessionStore("test-secret", time.Hour, nil, JWTOptions{})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	userID, ok, err := sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		t.Fatalf("validate token: ok=%v err=%v", ok, err)
	}
	if userID != "user-1" {
		t.Fatalf("subject = %q, want %q", userID, "user-1")
	}
}

func TestJWTSessionRejectsTamperedSignature(t *testing.T) {
	sessions, err := NewJWTSessionStore("test-secret", time.Hour, nil, JWTOptions{})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format")
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	if _, ok, _ := sessions.GetUserIDByToken(tampered); ok {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestJWTSessionRejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTSessionStore("secret-a", time.Hour, nil, JWTOptions{})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	verifier, err := NewJWTSessionStore("secret-b", time.Hour, nil, JWTOptions{})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := issuer.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, _ := verifier.GetUserIDByToken(token); ok {
		t.Fatalf("expected token signed with different secret to be rejected")
	}
}

func TestJWTSessionRejectsExpiredToken(t *testing.T) {
	sessions, err := NewJWTSessionStore("test-secret", time.Second, nil, JWTOptions{Leeway: time.Millisecond})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	sessions.ttl = -time.Hour
	token, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, _ := sessions.GetUserIDByToken(token); ok {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestJWTSessionRevocation(t *testing.T) {
	revoker := NewMemoryTokenRevoker()
	sessions, err := NewJWTSessionStore("test-secret", time.Hour, revoker, JWTOptions{})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, err := sessions.GetUserIDByToken(token); !ok || err != nil {
		t.Fatalf("expected valid token before logout: ok=%v err=%v", ok, err)
	}
	if err := sessions.DeleteSession(token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, _ := sessions.GetUserIDByToken(token); ok {
		t.Fatalf("expected revoked token to be rejected")
	}
}

func TestNewJWTSessionStoreRequiresSecret(t *testing.T) {
	if _, err := NewJWTSessionStore("   ", time.Hour, nil, JWTOptions{}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
