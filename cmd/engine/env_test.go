package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnotify-engine/internal/config"
	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/rank"
)

func TestResolveDataDir(t *testing.T) {
	env := func(v string) func(string) string {
		return func(string) string { return v }
	}

	assert.Equal(t, "/flag", resolveDataDir(" /flag ", env("/env")))
	assert.Equal(t, "/env", resolveDataDir("", env("/env")))
	assert.Equal(t, ".", resolveDataDir("", env("")))
}

func TestDatasetPath(t *testing.T) {
	cfg := config.Default()
	cfg.App.DataDir = "/data"

	cfg.Dataset.Path = ""
	assert.Equal(t, "", datasetPath(cfg))

	cfg.Dataset.Path = "jobs.json"
	assert.Equal(t, filepath.Join("/data", "jobs.json"), datasetPath(cfg))

	cfg.Dataset.Path = "/abs/jobs.json"
	assert.Equal(t, "/abs/jobs.json", datasetPath(cfg))
}

func TestStoreDSNSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = config.BackendSQLite

	dsn, err := storeDSN(cfg)
	require.NoError(t, err)
	assert.Empty(t, dsn)
}

func resetJobsFlags(t *testing.T) {
	t.Cleanup(func() {
		jobsSearch, jobsLocation, jobsMode, jobsExperience, jobsSource, jobsSort = "", "", "", "", "", ""
		jobsOnlyMatches = false
	})
}

func TestBuildQuery(t *testing.T) {
	resetJobsFlags(t)

	jobsSearch = "react"
	jobsLocation = " Pune "
	jobsMode = "Remote"
	jobsExperience = "1-3"
	jobsSource = "Naukri"
	jobsSort = "score"
	jobsOnlyMatches = true

	q, err := buildQuery()
	require.NoError(t, err)
	assert.Equal(t, "react", q.Search)
	assert.Equal(t, "Pune", q.Location)
	assert.Equal(t, domain.ModeRemote, q.Mode)
	assert.Equal(t, domain.Experience1To3, q.Experience)
	assert.Equal(t, domain.SourceNaukri, q.Source)
	assert.Equal(t, rank.SortScore, q.Sort)
	assert.True(t, q.OnlyMatches)
}

func TestBuildQueryRejectsUnknownValues(t *testing.T) {
	cases := []struct {
		name string
		set  func()
	}{
		{"mode", func() { jobsMode = "Office" }},
		{"experience", func() { jobsExperience = "10+" }},
		{"source", func() { jobsSource = "Monster" }},
		{"sort", func() { jobsSort = "random" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resetJobsFlags(t)
			tc.set()
			_, err := buildQuery()
			assert.Error(t, err)
		})
	}
}

func TestPreferencesFromFlags(t *testing.T) {
	t.Cleanup(func() {
		prefsKeywords, prefsLocations, prefsModes, prefsExperience, prefsSkills = "", "", "", "", ""
		prefsMinScore = domain.DefaultMinMatchScore
	})

	prefsKeywords = "frontend, react, ,Frontend"
	prefsLocations = "Remote"
	prefsModes = "Remote,Hybrid"
	prefsExperience = "1-3"
	prefsSkills = "react,typescript"
	prefsMinScore = 60

	p := preferencesFromFlags()
	assert.Equal(t, []string{"frontend", "react"}, p.RoleKeywords)
	assert.Equal(t, []string{"Remote"}, p.PreferredLocations)
	assert.Equal(t, []domain.Mode{domain.ModeRemote, domain.ModeHybrid}, p.PreferredMode)
	assert.Equal(t, domain.Experience1To3, p.ExperienceLevel)
	assert.Equal(t, []string{"react", "typescript"}, p.Skills)
	assert.Equal(t, 60, p.MinMatchScore)
}
