package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("a long enough password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "a long enough password" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword("a long enough password", hash); err != nil {
		t.Errorf("VerifyPassword with correct password: %v", err)
	}
	if err := VerifyPassword("wrong password here", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("VerifyPassword with wrong password: got %v, want ErrPasswordMismatch", err)
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("got %v, want ErrPasswordTooShort", err)
	}
}
