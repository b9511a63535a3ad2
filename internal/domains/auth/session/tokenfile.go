package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const tokenFileMode = 0o600

var ErrNoToken = errors.New("no session token")

// WriteToken persists the signed token so a later invocation can resume the session.
func WriteToken(path, token string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create token dir: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(token+"\n"), tokenFileMode); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

func ReadToken(path string) (string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}

	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(content))
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// RemoveToken deletes the token file; a missing file is not an error.
func RemoveToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}

	return nil
}
