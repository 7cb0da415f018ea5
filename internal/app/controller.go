// Package app owns the engine's mutable state: the saved preferences and the
// saved-job set. Readers get consistent snapshots; writes go through the
// Controller's writer methods only.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"jobnotify-engine/internal/dataset"
	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/events"
	"jobnotify-engine/internal/rank"
	"jobnotify-engine/internal/store"
)

var ErrUnknownJob = errors.New("unknown job")

type Options struct {
	Dataset     *dataset.Dataset
	Repo        *store.Repo
	Hub         *events.Hub // optional
	Weights     rank.Weights
	DefaultSort rank.SortKey
}

type Controller struct {
	data        *dataset.Dataset
	repo        *store.Repo
	hub         *events.Hub
	weights     rank.Weights
	defaultSort rank.SortKey

	writeMu  sync.Mutex   // serializes persist+swap
	settings atomic.Value // stores domain.Settings
	saved    atomic.Value // stores domain.SavedJobs
}

// New loads the persisted state from the repo.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Dataset == nil || opts.Repo == nil {
		return nil, errors.New("app: dataset and repo are required")
	}
	if opts.DefaultSort == "" {
		opts.DefaultSort = rank.SortLatest
	}

	settings, err := opts.Repo.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}
	settings = checkLoaded(settings)
	saved, err := opts.Repo.LoadSaved(ctx)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		data:        opts.Dataset,
		repo:        opts.Repo,
		hub:         opts.Hub,
		weights:     opts.Weights,
		defaultSort: opts.DefaultSort,
	}
	c.settings.Store(settings)
	c.saved.Store(saved)
	return c, nil
}

// checkLoaded applies the same normalization and validation as SavePreferences
// to stored preferences. Stored values that fail are ignored.
func checkLoaded(s domain.Settings) domain.Settings {
	p, ok := s.Get()
	if !ok {
		return s
	}
	p = NormalizePreferences(p)
	if err := ValidatePreferences(p); err != nil {
		log.Printf("[app] ignoring stored preferences: %v", err)
		return domain.Unconfigured()
	}
	return domain.Configured(p)
}

func (c *Controller) Settings() domain.Settings { return c.settings.Load().(domain.Settings) }

func (c *Controller) Saved() domain.SavedJobs { return c.saved.Load().(domain.SavedJobs) }

func (c *Controller) Jobs() []domain.Job { return c.data.All() }

func (c *Controller) Job(id string) (domain.Job, error) {
	j, ok := c.data.ByID(id)
	if !ok {
		return domain.Job{}, fmt.Errorf("%w: %q", ErrUnknownJob, id)
	}
	return j, nil
}

// Scorer is bound to the settings current at the time of the call.
func (c *Controller) Scorer() rank.MatchScorer {
	return rank.NewMatchScorer(c.weights, c.Settings())
}

func (c *Controller) Score(id string) (rank.Ranked, error) {
	j, err := c.Job(id)
	if err != nil {
		return rank.Ranked{}, err
	}
	score, tags := c.Scorer().Score(j)
	return rank.Ranked{Job: j, Score: score, Category: rank.CategoryFor(score), Tags: tags}, nil
}

// Rank runs the filter/sort pipeline. An empty sort key means the configured default.
func (c *Controller) Rank(q rank.Query) []rank.Ranked {
	if q.Sort == "" {
		q.Sort = c.defaultSort
	}
	return c.Scorer().Rank(c.data.All(), q)
}

// SavedJobs returns saved jobs in dataset order. Ids no longer in the dataset are skipped.
func (c *Controller) SavedJobs() []domain.Job {
	saved := c.Saved()
	var out []domain.Job
	for _, j := range c.data.All() {
		if saved.Has(j.ID) {
			out = append(out, j)
		}
	}
	return out
}

// SavePreferences validates p, persists it and makes it current. On any error
// the previous preferences stay in effect.
func (c *Controller) SavePreferences(ctx context.Context, p domain.Preferences) (domain.Preferences, error) {
	p = NormalizePreferences(p)
	if err := ValidatePreferences(p); err != nil {
		return domain.Preferences{}, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.repo.SavePreferences(ctx, p); err != nil {
		return domain.Preferences{}, err
	}
	c.settings.Store(domain.Configured(p))

	matches := 0
	scorer := c.Scorer()
	for _, j := range c.data.All() {
		if s, _ := scorer.Score(j); s >= p.MinMatchScore {
			matches++
		}
	}
	log.Printf("[app] preferences saved min_score=%d matches=%d", p.MinMatchScore, matches)
	c.publish(ctx, events.TypePreferencesSaved, events.PreferencesSaved{
		MinMatchScore: p.MinMatchScore,
		Matches:       matches,
	})
	return p, nil
}

// ResetPreferences forgets the saved preferences; every job scores 0 again.
func (c *Controller) ResetPreferences(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.repo.ClearPreferences(ctx); err != nil {
		return err
	}
	c.settings.Store(domain.Unconfigured())
	log.Printf("[app] preferences reset")
	c.publish(ctx, events.TypePreferencesReset, nil)
	return nil
}

// ToggleSaved adds or removes id and reports whether it is saved afterwards.
func (c *Controller) ToggleSaved(ctx context.Context, id string) (bool, error) {
	if _, err := c.Job(id); err != nil {
		return false, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	next, saved := c.Saved().Toggle(id)
	if err := c.repo.SaveSaved(ctx, next); err != nil {
		return false, err
	}
	c.saved.Store(next)

	typ := events.TypeJobUnsaved
	if saved {
		typ = events.TypeJobSaved
	}
	c.publish(ctx, typ, events.JobToggled{ID: id, SavedCount: next.Len()})
	return saved, nil
}

func (c *Controller) publish(ctx context.Context, typ string, data any) {
	if c.hub == nil {
		return
	}
	c.hub.Publish(events.MakeEvent(events.RequestIDFrom(ctx), typ, events.Version, data))
}
