package app

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnotify-engine/internal/dataset"
	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/events"
	"jobnotify-engine/internal/rank"
	"jobnotify-engine/internal/store"
)

const testJobs = `[
 {"id":"fe","title":"Frontend Engineer","company":"Acme","location":"Remote","mode":"Remote","experience":"1-3",
  "skills":["React"],"salaryRange":"10–18 LPA","postedDaysAgo":1,"source":"LinkedIn","applyUrl":"https://x/fe"},
 {"id":"be","title":"Backend Engineer","company":"Zeta","location":"Pune","mode":"Onsite","experience":"3-5",
  "skills":["Go"],"salaryRange":"20–30 LPA","postedDaysAgo":5,"source":"Naukri","applyUrl":"https://x/be"},
 {"id":"in","title":"Data Intern","company":"Orbit","location":"Chennai","mode":"Hybrid","experience":"Fresher",
  "skills":["SQL"],"salaryRange":"₹25k–₹40k/month","postedDaysAgo":0,"source":"Indeed","applyUrl":"https://x/in"}
]`

type fixture struct {
	c    *Controller
	db   *store.DB
	repo *store.Repo
	hub  *events.Hub
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ds, err := dataset.Parse([]byte(testJobs))
	require.NoError(t, err)

	db, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db.Pool))
	t.Cleanup(func() { _ = db.Close() })

	repo := store.NewRepo(db)
	hub := events.NewHub()
	c, err := New(context.Background(), Options{
		Dataset: ds,
		Repo:    repo,
		Hub:     hub,
		Weights: rank.DefaultWeights(),
	})
	require.NoError(t, err)
	return fixture{c: c, db: db, repo: repo, hub: hub}
}

func frontendPrefs() domain.Preferences {
	return domain.Preferences{
		RoleKeywords:       []string{"frontend"},
		PreferredLocations: []string{"Remote"},
		PreferredMode:      []domain.Mode{domain.ModeRemote},
		ExperienceLevel:    domain.Experience1To3,
		Skills:             []string{"react"},
		MinMatchScore:      40,
	}
}

func nextEvent(t *testing.T, ch chan string) events.Event {
	t.Helper()
	select {
	case raw := <-ch:
		var e events.Event
		require.NoError(t, json.Unmarshal([]byte(raw), &e))
		return e
	default:
		t.Fatal("no event published")
		return events.Event{}
	}
}

// ── construction ───────────────────────────────────────────────────────────

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}

func TestNew_StartsUnconfigured(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.c.Settings().IsConfigured())
	assert.Zero(t, f.c.Saved().Len())
	assert.Len(t, f.c.Jobs(), 3)

	for _, r := range f.c.Rank(rank.Query{}) {
		assert.Zero(t, r.Score)
	}
}

func TestNew_LoadsPersistedState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.SavePreferences(ctx, frontendPrefs()))
	require.NoError(t, f.repo.SaveSaved(ctx, domain.NewSavedJobs("be")))

	ds, err := dataset.Parse([]byte(testJobs))
	require.NoError(t, err)
	c, err := New(ctx, Options{Dataset: ds, Repo: f.repo, Weights: rank.DefaultWeights()})
	require.NoError(t, err)

	assert.True(t, c.Settings().IsConfigured())
	assert.True(t, c.Saved().Has("be"))
}

func TestNew_InvalidStoredPreferencesAreUnconfigured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.db.Set(ctx, store.KeyPreferences,
		`{"roleKeywords":"intern","experienceLevel":"fresher","minMatchScore":150}`))

	ds, err := dataset.Parse([]byte(testJobs))
	require.NoError(t, err)
	c, err := New(ctx, Options{Dataset: ds, Repo: f.repo, Weights: rank.DefaultWeights()})
	require.NoError(t, err)

	assert.False(t, c.Settings().IsConfigured())
	for _, r := range c.Rank(rank.Query{}) {
		assert.Zero(t, r.Score, r.Job.ID)
	}
	assert.Len(t, c.Rank(rank.Query{OnlyMatches: true}), 3)
}

func TestNew_NormalizesStoredPreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.db.Set(ctx, store.KeyPreferences,
		`{"roleKeywords":"intern","preferredMode":"hybrid","experienceLevel":"fresher","minMatchScore":50}`))

	ds, err := dataset.Parse([]byte(testJobs))
	require.NoError(t, err)
	c, err := New(ctx, Options{Dataset: ds, Repo: f.repo, Weights: rank.DefaultWeights()})
	require.NoError(t, err)

	p, ok := c.Settings().Get()
	require.True(t, ok)
	assert.Equal(t, domain.ExperienceFresher, p.ExperienceLevel)
	assert.Equal(t, []domain.Mode{domain.ModeHybrid}, p.PreferredMode)

	r, err := c.Score("in")
	require.NoError(t, err)
	// title 25 + mode 10 + experience 10 + recent 5
	assert.Equal(t, 50, r.Score)
	assert.Equal(t, []string{rank.TagTitle, rank.TagMode, rank.TagExperience, rank.TagRecent}, r.Tags)
}

// ── readers ────────────────────────────────────────────────────────────────

func TestJobAndScore(t *testing.T) {
	f := newFixture(t)
	_, err := f.c.SavePreferences(context.Background(), frontendPrefs())
	require.NoError(t, err)

	r, err := f.c.Score("fe")
	require.NoError(t, err)
	assert.Equal(t, 85, r.Score)
	assert.Equal(t, rank.CategoryHigh, r.Category)
	assert.Contains(t, r.Tags, rank.TagTitle)

	_, err = f.c.Job("nope")
	assert.True(t, errors.Is(err, ErrUnknownJob))
	_, err = f.c.Score("nope")
	assert.True(t, errors.Is(err, ErrUnknownJob))
}

func TestRank_DefaultSort(t *testing.T) {
	f := newFixture(t)
	out := f.c.Rank(rank.Query{})
	require.Len(t, out, 3)
	assert.Equal(t, "in", out[0].Job.ID)

	ds, _ := dataset.Parse([]byte(testJobs))
	c, err := New(context.Background(), Options{Dataset: ds, Repo: f.repo, DefaultSort: rank.SortSalary})
	require.NoError(t, err)
	assert.Equal(t, "be", c.Rank(rank.Query{})[0].Job.ID)
}

// ── writers ────────────────────────────────────────────────────────────────

func TestSavePreferences(t *testing.T) {
	f := newFixture(t)
	ch := f.hub.Subscribe()
	defer f.hub.Unsubscribe(ch)

	ctx := events.WithRequestID(context.Background(), "req-9")
	saved, err := f.c.SavePreferences(ctx, frontendPrefs())
	require.NoError(t, err)
	assert.Equal(t, frontendPrefs(), saved)

	got, ok := f.c.Settings().Get()
	require.True(t, ok)
	assert.Equal(t, frontendPrefs(), got)

	e := nextEvent(t, ch)
	assert.Equal(t, events.TypePreferencesSaved, e.Type)
	assert.Equal(t, "req-9", e.RequestID)
	assert.JSONEq(t, `{"minMatchScore":40,"matches":1}`, string(e.Data))

	// persisted
	s, err := f.repo.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, s.IsConfigured())
}

func TestSavePreferences_Normalizes(t *testing.T) {
	f := newFixture(t)
	p, err := f.c.SavePreferences(context.Background(), domain.Preferences{
		RoleKeywords:       []string{" Go ", "go", ""},
		PreferredLocations: []string{"pune", "Pune"},
		PreferredMode:      []domain.Mode{"remote", "REMOTE", "hybrid"},
		ExperienceLevel:    " fresher ",
		MinMatchScore:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, p.RoleKeywords)
	assert.Equal(t, []string{"Pune"}, p.PreferredLocations)
	assert.Equal(t, []domain.Mode{domain.ModeRemote, domain.ModeHybrid}, p.PreferredMode)
	assert.Equal(t, domain.ExperienceFresher, p.ExperienceLevel)
}

func TestSavePreferences_Invalid(t *testing.T) {
	f := newFixture(t)
	_, err := f.c.SavePreferences(context.Background(), frontendPrefs())
	require.NoError(t, err)

	bad := domain.Preferences{
		PreferredLocations: []string{"Atlantis"},
		PreferredMode:      []domain.Mode{"Anywhere"},
		ExperienceLevel:    "10+",
		MinMatchScore:      101,
	}
	_, err = f.c.SavePreferences(context.Background(), bad)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	fields := map[string]string{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = fe.Rule
	}
	assert.Equal(t, map[string]string{
		"preferredLocations[0]": "location",
		"preferredMode[0]":      "mode",
		"experienceLevel":       "experience",
		"minMatchScore":         "max",
	}, fields)

	// previous preferences still current
	got, _ := f.c.Settings().Get()
	assert.Equal(t, frontendPrefs(), got)
}

func TestResetPreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.c.SavePreferences(ctx, frontendPrefs())
	require.NoError(t, err)

	ch := f.hub.Subscribe()
	defer f.hub.Unsubscribe(ch)

	require.NoError(t, f.c.ResetPreferences(ctx))
	assert.False(t, f.c.Settings().IsConfigured())
	assert.Equal(t, events.TypePreferencesReset, nextEvent(t, ch).Type)

	r, err := f.c.Score("fe")
	require.NoError(t, err)
	assert.Zero(t, r.Score)

	s, err := f.repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.False(t, s.IsConfigured())
}

func TestValidatePreferences_Bounds(t *testing.T) {
	assert.NoError(t, ValidatePreferences(domain.Preferences{MinMatchScore: 0}))
	assert.NoError(t, ValidatePreferences(domain.Preferences{MinMatchScore: 100}))
	assert.Error(t, ValidatePreferences(domain.Preferences{MinMatchScore: -1}))
}

func TestToggleSaved(t *testing.T) {
	f := newFixture(t)
	ch := f.hub.Subscribe()
	defer f.hub.Unsubscribe(ch)
	ctx := context.Background()

	saved, err := f.c.ToggleSaved(ctx, "in")
	require.NoError(t, err)
	assert.True(t, saved)
	e := nextEvent(t, ch)
	assert.Equal(t, events.TypeJobSaved, e.Type)
	assert.JSONEq(t, `{"id":"in","savedCount":1}`, string(e.Data))

	saved, err = f.c.ToggleSaved(ctx, "fe")
	require.NoError(t, err)
	assert.True(t, saved)
	_ = nextEvent(t, ch)

	// dataset order, not save order
	jobs := f.c.SavedJobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "fe", jobs[0].ID)
	assert.Equal(t, "in", jobs[1].ID)

	saved, err = f.c.ToggleSaved(ctx, "in")
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, events.TypeJobUnsaved, nextEvent(t, ch).Type)

	persisted, err := f.repo.LoadSaved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fe"}, persisted.IDs())
}

func TestToggleSaved_UnknownJob(t *testing.T) {
	f := newFixture(t)
	_, err := f.c.ToggleSaved(context.Background(), "ghost")
	assert.True(t, errors.Is(err, ErrUnknownJob))
	assert.Zero(t, f.c.Saved().Len())
}

func TestSavedJobs_SkipsIDsMissingFromDataset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.SaveSaved(ctx, domain.NewSavedJobs("gone", "be")))

	ds, _ := dataset.Parse([]byte(testJobs))
	c, err := New(ctx, Options{Dataset: ds, Repo: f.repo})
	require.NoError(t, err)

	jobs := c.SavedJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "be", jobs[0].ID)
}
