package secrets

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"jobnotify-engine/internal/config"
)

const (
	// “Service” groups the engine's secrets in the OS keychain.
	KeyringService = "jobnotify"

	PasswordEnv = "JOBNOTIFY_STORE_PASSWORD"
)

var ErrNoPassword = errors.New("store password not found (set it in keychain or via " + PasswordEnv + ")")

// BackendPassword returns the password for a remote store backend.
func BackendPassword(keyringAccount string) (string, error) {
	return backendPassword(keyringAccount, os.Getenv)
}

func backendPassword(keyringAccount string, getenv func(string) string) (string, error) {
	// 1) Keyring first (recommended)
	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}

	// 2) Env
	if pw := strings.TrimSpace(getenv(PasswordEnv)); pw != "" {
		return pw, nil
	}

	return "", ErrNoPassword
}

func SetBackendPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteBackendPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

// StoreKeyringAccount is the keychain account for the configured backend.
func StoreKeyringAccount(cfg config.Config) string {
	if a := strings.TrimSpace(cfg.Store.KeyringAccount); a != "" {
		return a
	}
	return fmt.Sprintf("jobnotify:store:%s", cfg.Store.Backend)
}

// InjectPassword fills pw into a redis:// or postgres:// URL that carries none.
// A URL that already has a password, or an empty pw, is returned unchanged.
func InjectPassword(dsn, pw string) (string, error) {
	if pw == "" {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse store url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("store url %q has no scheme or host", u.Redacted())
	}

	user := ""
	if u.User != nil {
		if _, has := u.User.Password(); has {
			return dsn, nil
		}
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, pw)
	return u.String(), nil
}
