package vault

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// Record is one TOTP enrollment: the service it belongs to, the account on
// that service and the base32 shared secret.
type Record struct {
	Service string `json:"service"`
	Account string `json:"account"`
	Secret  string `json:"secret"`
}

// ErrDecryptionFailed indicates a wrong key or a corrupted token. The cause
// is deliberately not distinguished.
var ErrDecryptionFailed = errors.New("decryption failed")

// Encrypt serializes the record and seals it into a single opaque Fernet
// token suitable for line-oriented or row-oriented storage.
func Encrypt(rec Record, key *fernet.Key) (string, error) {
	plain, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to serialize record: %w", err)
	}

	token, err := fernet.EncryptAndSign(plain, key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt record: %w", err)
	}

	return string(token), nil
}

// Decrypt verifies and opens a token produced by Encrypt. A wrong key or a
// tampered token yields ErrDecryptionFailed, never wrong data.
func Decrypt(token string, key *fernet.Key) (Record, error) {
	// TTL 0: stored records do not expire.
	plain := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{key})
	if plain == nil {
		return Record{}, ErrDecryptionFailed
	}

	var rec Record
	if err := json.Unmarshal(plain, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: malformed record payload", ErrDecryptionFailed)
	}

	return rec, nil
}
