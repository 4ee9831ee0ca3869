// Package auth stores the Gemini API key in the OS keychain and resolves
// it from the environment when the keychain has none.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	serviceName = "lexread"
	accountName = "gemini-api-key"
)

// EnvVars are checked in order when the keychain has no key.
var EnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// Source labels where a key was found.
type Source string

const (
	SourceNone     Source = ""
	SourceKeychain Source = "Keychain"
	SourceEnv      Source = "Environment Variable"
)

// Keychain is the OS keychain entry for the API key. It satisfies
// settings.SecretStore.
type Keychain struct{}

// Get returns the stored key, or "" when there is none.
func (Keychain) Get() (string, error) {
	key, err := keyring.Get(serviceName, accountName)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read keychain: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// Set stores key. A blank key removes the entry.
func (k Keychain) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return k.Delete()
	}
	if err := keyring.Set(serviceName, accountName, key); err != nil {
		return fmt.Errorf("write keychain: %w", err)
	}
	return nil
}

// Delete removes the entry. A missing entry is not an error.
func (Keychain) Delete() error {
	err := keyring.Delete(serviceName, accountName)
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("delete keychain entry: %w", err)
}

// Resolve returns the keychain key, falling back to the environment.
func Resolve() (string, Source) {
	if key, err := (Keychain{}).Get(); err == nil && key != "" {
		return key, SourceKeychain
	}
	if key, ok := GetEnvKey(); ok {
		return key, SourceEnv
	}
	return "", SourceNone
}

// GetEnvKey returns the first non-blank key from EnvVars.
func GetEnvKey() (string, bool) {
	for _, name := range EnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key, true
		}
	}
	return "", false
}

// GetStatus reports whether the keychain holds a key.
func GetStatus() bool {
	key, err := Keychain{}.Get()
	return err == nil && key != ""
}

func SaveKey(key string) error { return Keychain{}.Set(key) }
func DeleteKey() error         { return Keychain{}.Delete() }

// PromptForAPIKey reads a key from the terminal without echoing it. The
// prompt goes to stderr so stdout stays clean for scripts.
func PromptForAPIKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
