package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID, "admin@example.org", true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "admin@example.org" {
		t.Errorf("Email = %s, want admin@example.org", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin should be true")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue(uuid.New(), "a@b.org", false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := NewTokenService("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("token signed with a different secret must not verify")
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Millisecond)
	token, err := svc.Issue(uuid.New(), "a@b.org", false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := svc.Verify(token); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); err == nil {
		t.Error("garbage input must not verify")
	}
}
