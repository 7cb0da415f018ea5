// config/overlay.go
package config

import (
	"strconv"
	"strings"
)

// OverlayEnv applies environment overrides on top of a loaded file.
// getenv is os.Getenv outside of tests.
func OverlayEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("JOBNOTIFY_DATA_DIR")); v != "" {
		cfg.App.DataDir = v
	}
	if v := strings.TrimSpace(getenv("JOBNOTIFY_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &EnvError{Name: "JOBNOTIFY_PORT", Value: v, Err: err}
		}
		cfg.App.Port = port
	}
	if v := strings.TrimSpace(getenv("JOBNOTIFY_STORE")); v != "" {
		cfg.Store.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv("REDIS_URL")); v != "" {
		cfg.Store.RedisURL = v
	}
	if v := strings.TrimSpace(getenv("DATABASE_URL")); v != "" {
		cfg.Store.DatabaseURL = v
	}
	if v := strings.TrimSpace(getenv("JOBNOTIFY_DATASET")); v != "" {
		cfg.Dataset.Path = v
	}
	return nil
}

type EnvError struct {
	Name  string
	Value string
	Err   error
}

func (e *EnvError) Error() string {
	return "env " + e.Name + "=" + strconv.Quote(e.Value) + ": " + e.Err.Error()
}

func (e *EnvError) Unwrap() error { return e.Err }
