package vault

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fernet/fernet-go"
)

// EnvKeyName is the environment variable consulted as a key source.
const EnvKeyName = "FERNETKEY"

// keyFilePerm keeps the generated key private to the owning user.
const keyFilePerm = 0o600

// ErrKeyUnavailable indicates that no key source yielded a key and
// generation was not permitted or failed.
var ErrKeyUnavailable = errors.New("no encryption key available")

// ResolveKey resolves the Fernet key from, in priority order: the explicit
// value (--key), the key file, the environment variable. When no source
// yields a key and allowGenerate is true, a new key is generated and
// persisted to keyFile with 0600 permissions for future runs.
//
// An existing key is never regenerated: doing so would make every stored
// record undecryptable.
func ResolveKey(explicit, keyFile, envVar string, allowGenerate bool) (*fernet.Key, error) {
	if explicit != "" {
		key, err := fernet.DecodeKey(explicit)
		if err != nil {
			return nil, fmt.Errorf("invalid --key value: %w", err)
		}
		return key, nil
	}

	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		switch {
		case err == nil:
			key, derr := fernet.DecodeKey(strings.TrimSpace(string(data)))
			if derr != nil {
				return nil, fmt.Errorf("invalid key in %s: %w", keyFile, derr)
			}
			return key, nil
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read key file %s: %w", keyFile, err)
		}
	}

	if envVar != "" {
		if v := os.Getenv(envVar); v != "" {
			key, err := fernet.DecodeKey(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid key in $%s: %w", envVar, err)
			}
			return key, nil
		}
	}

	if !allowGenerate || keyFile == "" {
		return nil, ErrKeyUnavailable
	}

	return generateKey(keyFile)
}

// generateKey creates a fresh Fernet key and persists it to keyFile.
func generateKey(keyFile string) (*fernet.Key, error) {
	key := new(fernet.Key)
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("%w: key generation failed: %v", ErrKeyUnavailable, err)
	}

	if err := os.WriteFile(keyFile, []byte(key.Encode()), keyFilePerm); err != nil {
		return nil, fmt.Errorf("%w: failed to persist key to %s: %v", ErrKeyUnavailable, keyFile, err)
	}

	return key, nil
}
