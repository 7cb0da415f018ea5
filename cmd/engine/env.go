package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"jobnotify-engine/internal/app"
	"jobnotify-engine/internal/config"
	"jobnotify-engine/internal/dataset"
	"jobnotify-engine/internal/events"
	"jobnotify-engine/internal/rank"
	"jobnotify-engine/internal/secrets"
	"jobnotify-engine/internal/store"
)

// resolveDataDir: flag, then env, then the working directory.
func resolveDataDir(flag string, getenv func(string) string) string {
	if d := strings.TrimSpace(flag); d != "" {
		return d
	}
	if d := strings.TrimSpace(getenv("JOBNOTIFY_DATA_DIR")); d != "" {
		return d
	}
	return "."
}

// loadConfig bootstraps config.yml in the data dir, loads it and applies env overrides.
func loadConfig() (config.Config, string, error) {
	dataDir := resolveDataDir(dataDirFlag, os.Getenv)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return config.Config{}, "", err
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("config bootstrap failed: %w", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, cfgPath, fmt.Errorf("config load failed (%s): %w", cfgPath, err)
	}
	if err := config.OverlayEnv(&cfg, os.Getenv); err != nil {
		return config.Config{}, cfgPath, err
	}
	if dataDirFlag != "" {
		cfg.App.DataDir = dataDir
	}

	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !vr.OK() {
		return cfg, cfgPath, fmt.Errorf("config %s is invalid:\n- %s", cfgPath, strings.Join(vr.Errors, "\n- "))
	}
	return cfg, cfgPath, nil
}

// storeDSN returns the remote backend URL with the keychain password filled in.
// Empty for sqlite.
func storeDSN(cfg config.Config) (string, error) {
	var dsn string
	switch cfg.Store.Backend {
	case config.BackendRedis:
		dsn = cfg.Store.RedisURL
	case config.BackendPostgres:
		dsn = cfg.Store.DatabaseURL
	default:
		return "", nil
	}

	pw, err := secrets.BackendPassword(secrets.StoreKeyringAccount(cfg))
	if errors.Is(err, secrets.ErrNoPassword) {
		return dsn, nil
	}
	if err != nil {
		return "", err
	}
	return secrets.InjectPassword(dsn, pw)
}

func datasetPath(cfg config.Config) string {
	p := cfg.Dataset.Path
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.App.DataDir, p)
}

// openApp wires dataset, store and controller. The returned close func releases the store.
func openApp(ctx context.Context, cfg config.Config, hub *events.Hub) (*app.Controller, func() error, error) {
	ds, err := dataset.Load(datasetPath(cfg))
	if err != nil {
		return nil, nil, err
	}

	dsn, err := storeDSN(cfg)
	if err != nil {
		return nil, nil, err
	}
	kv, err := store.OpenKV(ctx, cfg, dsn)
	if err != nil {
		return nil, nil, err
	}
	repo := store.NewRepo(kv)

	sortKey, err := rank.ParseSortKey(cfg.Ranking.DefaultSort)
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}

	c, err := app.New(ctx, app.Options{
		Dataset:     ds,
		Repo:        repo,
		Hub:         hub,
		Weights:     rank.WeightsFromConfig(cfg),
		DefaultSort: sortKey,
	})
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	return c, repo.Close, nil
}
