package crypto

import (
	"errors"
	"testing"

	"github.com/ekomarov/tasktrack/internal/errs"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	pw := []byte("Str0ngPass!")
	h, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if len(h) == 0 {
		t.Fatalf("empty hash")
	}
	if !VerifyPassword(pw, h) {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword([]byte("Str0ngPass?"), h) {
		t.Fatalf("wrong password accepted")
	}

	h2, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword(2): %v", err)
	}
	if string(h) == string(h2) {
		t.Fatalf("bcrypt hashes should differ (random salt)")
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"alice", "Bob_99", "abc"} {
		if err := ValidateUsername(ok); err != nil {
			t.Fatalf("ValidateUsername(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "ab", "has space", "semi;colon", "verylongusername_that_is_over_thirty_chars"} {
		err := ValidateUsername(bad)
		if !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("ValidateUsername(%q) = %v, want ErrValidation", bad, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"Str0ngPass!", "abcdefg1", "12345678a"} {
		if err := ValidatePassword(ok); err != nil {
			t.Fatalf("ValidatePassword(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "short1", "onlyletters", "12345678"} {
		err := ValidatePassword(bad)
		if !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("ValidatePassword(%q) = %v, want ErrValidation", bad, err)
		}
	}
}
