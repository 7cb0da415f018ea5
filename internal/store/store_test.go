package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnotify-engine/internal/config"
	"jobnotify-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db.Pool))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// exerciseKV runs the same contract against any backend.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	require.NoError(t, kv.Set(ctx, "k", "v2"))
	v, _, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, kv.Set(ctx, "empty", ""))
	v, ok, err = kv.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)

	require.NoError(t, kv.Delete(ctx, "k"))
	require.NoError(t, kv.Delete(ctx, "k"))
	_, ok, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Delete(ctx, "empty"))
}

// ── sqlite ────────────────────────────────────────────────────────────────

func TestSQLiteKV(t *testing.T) {
	exerciseKV(t, openTestDB(t))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, schemaVersion, v)
	assert.True(t, columnExists(db.Pool, "kv", "updated_at"))
}

func TestSQLiteKV_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "p.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, Migrate(db.Pool))
	require.NoError(t, db.Set(ctx, "a", "1"))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	v, ok, err := db.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestOpenKV_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.App.DataDir = t.TempDir()

	kv, err := OpenKV(context.Background(), cfg, "")
	require.NoError(t, err)
	defer kv.Close()

	exerciseKV(t, kv)
	assert.FileExists(t, filepath.Join(cfg.App.DataDir, "jobnotify.db"))
}

func TestOpenKV_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "mongo"
	_, err := OpenKV(context.Background(), cfg, "")
	assert.Error(t, err)
}

func TestSQLitePath(t *testing.T) {
	cfg := config.Default()
	cfg.App.DataDir = "/data"
	assert.Equal(t, filepath.Join("/data", "jobnotify.db"), SQLitePath(cfg))

	cfg.Store.SQLitePath = "/abs/x.db"
	assert.Equal(t, "/abs/x.db", SQLitePath(cfg))
}

// ── remote backends (opt-in) ─────────────────────────────────────────────

func TestRedisKV(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	rdb, err := NewRedisClient(context.Background(), url)
	require.NoError(t, err)
	kv := NewRedisKV(rdb)
	defer kv.Close()
	exerciseKV(t, kv)
}

func TestPostgresKV(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPostgresPool(ctx, url)
	require.NoError(t, err)
	kv, err := NewPostgresKV(ctx, pool)
	require.NoError(t, err)
	defer kv.Close()
	exerciseKV(t, kv)
}

// ── repo ──────────────────────────────────────────────────────────────────

func TestRepo_SettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))

	s, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.False(t, s.IsConfigured())

	p := domain.Preferences{
		RoleKeywords:       []string{"frontend", "react"},
		PreferredLocations: []string{"Remote", "Pune"},
		PreferredMode:      []domain.Mode{domain.ModeRemote},
		ExperienceLevel:    domain.Experience1To3,
		Skills:             []string{"React"},
		MinMatchScore:      55,
	}
	require.NoError(t, repo.SavePreferences(ctx, p))

	s, err = repo.LoadSettings(ctx)
	require.NoError(t, err)
	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, p, got)

	require.NoError(t, repo.ClearPreferences(ctx))
	s, err = repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.False(t, s.IsConfigured())
}

func TestRepo_ZeroThresholdSurvives(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))

	require.NoError(t, repo.SavePreferences(ctx, domain.Preferences{MinMatchScore: 0}))
	s, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	p, _ := s.Get()
	assert.Equal(t, 0, p.MinMatchScore)
}

func TestRepo_CorruptPreferencesAreUnconfigured(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepo(db)

	for _, raw := range []string{`{not json`, `[1,2]`, `"text"`} {
		require.NoError(t, db.Set(ctx, KeyPreferences, raw))
		s, err := repo.LoadSettings(ctx)
		require.NoError(t, err, raw)
		assert.False(t, s.IsConfigured(), raw)
	}
}

func TestRepo_SavedRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))

	s, err := repo.LoadSaved(ctx)
	require.NoError(t, err)
	assert.Zero(t, s.Len())

	require.NoError(t, repo.SaveSaved(ctx, domain.NewSavedJobs("b", "a")))
	s, err = repo.LoadSaved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, s.IDs())
}

func TestRepo_SavedTolerant(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepo(db)

	cases := map[string][]string{
		`["a","b","a",""]`:    {"a", "b"},
		`[1, "job-2", null]`:  {"1", "job-2"},
		`{"a":true}`:          {},
		`garbage`:             {},
		`[]`:                  {},
	}
	for raw, want := range cases {
		require.NoError(t, db.Set(ctx, KeySavedJobs, raw))
		s, err := repo.LoadSaved(ctx)
		require.NoError(t, err, raw)
		assert.Equal(t, want, s.IDs(), raw)
	}
}

func TestDecodePreferences(t *testing.T) {
	p, err := DecodePreferences(`{
		"roleKeywords": "frontend, React ,, frontend",
		"preferredLocations": ["Remote", " Pune "],
		"preferredMode": "Remote,Hybrid",
		"experienceLevel": "1-3",
		"skills": ["react", "React", "css"]
	}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"frontend", "React"}, p.RoleKeywords)
	assert.Equal(t, []string{"Remote", "Pune"}, p.PreferredLocations)
	assert.Equal(t, []domain.Mode{domain.ModeRemote, domain.ModeHybrid}, p.PreferredMode)
	assert.Equal(t, domain.Experience1To3, p.ExperienceLevel)
	assert.Equal(t, []string{"react", "css"}, p.Skills)
	assert.Equal(t, domain.DefaultMinMatchScore, p.MinMatchScore)

	p, err = DecodePreferences(`{"minMatchScore": "70", "experienceLevel": null}`)
	require.NoError(t, err)
	assert.Equal(t, 70, p.MinMatchScore)
	assert.Equal(t, domain.Experience(""), p.ExperienceLevel)
	assert.Nil(t, p.RoleKeywords)

	_, err = DecodePreferences(`nope`)
	assert.Error(t, err)
}

func TestDecodePreferences_ThresholdMustBeNumeric(t *testing.T) {
	for _, raw := range []string{
		`{"minMatchScore": "high"}`,
		`{"minMatchScore": "7.5"}`,
		`{"minMatchScore": true}`,
		`{"minMatchScore": [40]}`,
		`{"minMatchScore": {"v": 40}}`,
	} {
		_, err := DecodePreferences(raw)
		assert.Error(t, err, raw)
	}

	p, err := DecodePreferences(`{"minMatchScore": " 55 "}`)
	require.NoError(t, err)
	assert.Equal(t, 55, p.MinMatchScore)

	p, err = DecodePreferences(`{"minMatchScore": 0}`)
	require.NoError(t, err)
	assert.Equal(t, 0, p.MinMatchScore)
}
