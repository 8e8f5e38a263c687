package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var keyPattern = regexp.MustCompile(`(?i)^[a-z][a-z0-9_-]+$`)

// Validation failures for a project key.
var (
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrFolderExists     = errors.New("folder already exists")
)

// Dir returns the project directory for key under workingDir.
func Dir(workingDir, key string) string {
	return filepath.Join(workingDir, key)
}

// ValidKeyFormat reports whether key is syntactically valid.
func ValidKeyFormat(key string) bool {
	return keyPattern.MatchString(key)
}

// ValidateKey checks that key is well formed and that nothing named key
// exists in workingDir yet.
func ValidateKey(workingDir, key string) error {
	if !ValidKeyFormat(key) {
		return fmt.Errorf("%w %q: start with a letter and use only letters, digits, '-' and '_'", ErrInvalidKeyFormat, key)
	}
	if _, err := os.Lstat(Dir(workingDir, key)); err == nil {
		return fmt.Errorf("%w: %q, use a different project key", ErrFolderExists, key)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", Dir(workingDir, key), err)
	}
	return nil
}
