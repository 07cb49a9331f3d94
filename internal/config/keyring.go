package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "tagsync"
	keyringUser    = "api-token"
	fallbackFile   = ".token"
)

// ErrNoToken is returned when no API token is stored anywhere.
var ErrNoToken = errors.New("no API token configured")

var (
	// fallbackMode indicates if we're using file-based fallback (headless systems)
	fallbackMode    bool
	fallbackModeMu  sync.Mutex
	fallbackChecked bool
)

// checkKeyringAvailable tests if system keyring is available
func checkKeyringAvailable() bool {
	fallbackModeMu.Lock()
	defer fallbackModeMu.Unlock()

	if fallbackChecked {
		return !fallbackMode
	}

	testKey := "tagsync-keyring-test"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		fallbackMode = true
		fallbackChecked = true
		return false
	}

	_ = keyring.Delete(keyringService, testKey)
	fallbackChecked = true
	return true
}

func getFallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir, fallbackFile), nil
}

// StoreToken saves the API token in the system keyring, or in a 0600 file
// under ~/.tagsync when no keyring is reachable.
func StoreToken(token string) error {
	if checkKeyringAvailable() {
		if err := keyring.Set(keyringService, keyringUser, token); err != nil {
			return fmt.Errorf("failed to store token in keyring: %w", err)
		}
		return nil
	}

	path, err := getFallbackPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// LoadToken returns the stored API token.
func LoadToken() (string, error) {
	if checkKeyringAvailable() {
		token, err := keyring.Get(keyringService, keyringUser)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("failed to read token from keyring: %w", err)
		}
	}

	path, err := getFallbackPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// DeleteToken removes the token from both the keyring and the fallback file.
func DeleteToken() error {
	if checkKeyringAvailable() {
		if err := keyring.Delete(keyringService, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("failed to delete token from keyring: %w", err)
		}
	}
	path, err := getFallbackPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ResolveToken fills cfg.API.Token from the credential store when it was not
// supplied by the config file or environment. A bearer token needs no exchange token.
func ResolveToken(cfg *Config) error {
	if cfg.API.Token != "" || cfg.API.Bearer != "" {
		return nil
	}
	token, err := LoadToken()
	if err != nil {
		return err
	}
	cfg.API.Token = token
	return nil
}

// TokenBackend names the active credential store.
func TokenBackend() string {
	if checkKeyringAvailable() {
		return "system-keyring"
	}
	return "file-fallback"
}
