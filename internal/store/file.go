package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FileStore appends encrypted tokens to a text file, one token per line.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path. The file is
// created lazily on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append writes one token as a new line at the end of the file.
func (s *FileStore) Append(token string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("store file %s not writable: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(token + "\n"); err != nil {
		return fmt.Errorf("failed to append to store file %s: %w", s.path, err)
	}

	return nil
}

// ReadAll returns every stored token in the order it was appended.
func (s *FileStore) ReadAll() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("store file %s not readable: %w", s.path, err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store file %s: %w", s.path, err)
	}

	return tokens, nil
}

// Close implements Store. The file is opened per operation, so there is
// nothing to release.
func (s *FileStore) Close() error {
	return nil
}
