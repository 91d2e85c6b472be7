package vault

import (
	"errors"
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := newTestKey(t)

	rec := Record{
		Service: "DevTek.org",
		Account: "leif.gregory",
		Secret:  "JBSWY3DPEHPK3PXP",
	}

	token, err := Encrypt(rec, key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if token == "" {
		t.Fatal("Encrypt returned empty token")
	}

	got, err := Decrypt(token, key)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != rec {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, rec)
	}
}

func TestTokenIsOpaque(t *testing.T) {
	key := newTestKey(t)

	rec := Record{Service: "DevTek.org", Account: "leif.gregory", Secret: "JBSWY3DPEHPK3PXP"}
	token, err := Encrypt(rec, key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// The plaintext triple must not be visible in the token
	for _, plain := range []string{rec.Service, rec.Account, rec.Secret} {
		if strings.Contains(token, plain) {
			t.Errorf("token leaks plaintext %q", plain)
		}
	}
}

func TestDecryptWrongKey(t *testing.T) {
	key := newTestKey(t)
	otherKey := newTestKey(t)

	token, err := Encrypt(Record{Service: "a", Account: "b", Secret: "JBSWY3DPEHPK3PXP"}, key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = Decrypt(token, otherKey)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("err = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecryptCorruptToken(t *testing.T) {
	key := newTestKey(t)

	for _, bad := range []string{"", "garbage", "gAAAAABnot-a-real-token"} {
		if _, err := Decrypt(bad, key); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("Decrypt(%q) err = %v, want ErrDecryptionFailed", bad, err)
		}
	}
}
