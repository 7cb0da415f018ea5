package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"jobnotify-engine/internal/domain"
)

// Keys the settings form and the save button have always used.
const (
	KeyPreferences = "jobTrackerPreferences"
	KeySavedJobs   = "jobTrackerSavedJobs"
)

// Repo reads and writes engine state on any KV backend.
type Repo struct {
	kv KV
}

func NewRepo(kv KV) *Repo { return &Repo{kv: kv} }

// LoadSettings returns Unconfigured when nothing was ever saved. A stored value
// that is not a JSON object is logged and treated the same way.
func (r *Repo) LoadSettings(ctx context.Context) (domain.Settings, error) {
	raw, ok, err := r.kv.Get(ctx, KeyPreferences)
	if err != nil {
		return domain.Unconfigured(), fmt.Errorf("load preferences: %w", err)
	}
	if !ok {
		return domain.Unconfigured(), nil
	}
	p, err := DecodePreferences(raw)
	if err != nil {
		log.Printf("[store] ignoring stored preferences: %v", err)
		return domain.Unconfigured(), nil
	}
	return domain.Configured(p), nil
}

// SavePreferences overwrites the stored preferences as a whole.
func (r *Repo) SavePreferences(ctx context.Context, p domain.Preferences) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := r.kv.Set(ctx, KeyPreferences, string(b)); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (r *Repo) ClearPreferences(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyPreferences); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}
	return nil
}

// LoadSaved returns the saved job ids. Corrupt data degrades to an empty set.
func (r *Repo) LoadSaved(ctx context.Context) (domain.SavedJobs, error) {
	raw, ok, err := r.kv.Get(ctx, KeySavedJobs)
	if err != nil {
		return domain.NewSavedJobs(), fmt.Errorf("load saved jobs: %w", err)
	}
	if !ok {
		return domain.NewSavedJobs(), nil
	}
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsArray() {
		log.Printf("[store] saved jobs value is not a JSON array, starting empty")
		return domain.NewSavedJobs(), nil
	}

	var ids []string
	gjson.Parse(raw).ForEach(func(_, v gjson.Result) bool {
		// ids were numbers in some older shells
		if v.Type == gjson.String || v.Type == gjson.Number {
			ids = append(ids, strings.TrimSpace(v.String()))
		}
		return true
	})
	return domain.NewSavedJobs(ids...), nil
}

func (r *Repo) SaveSaved(ctx context.Context, s domain.SavedJobs) error {
	b, err := json.Marshal(s.IDs())
	if err != nil {
		return fmt.Errorf("encode saved jobs: %w", err)
	}
	if err := r.kv.Set(ctx, KeySavedJobs, string(b)); err != nil {
		return fmt.Errorf("save saved jobs: %w", err)
	}
	return nil
}

func (r *Repo) Close() error { return r.kv.Close() }

// DecodePreferences reads a stored preferences object. List fields may be a
// JSON array or the raw comma-separated form text; a missing minMatchScore
// means the default.
func DecodePreferences(raw string) (domain.Preferences, error) {
	if !gjson.Valid(raw) {
		return domain.Preferences{}, fmt.Errorf("preferences are not valid JSON")
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return domain.Preferences{}, fmt.Errorf("preferences are not a JSON object")
	}

	p := domain.Preferences{
		RoleKeywords:       stringList(doc.Get("roleKeywords")),
		PreferredLocations: stringList(doc.Get("preferredLocations")),
		ExperienceLevel:    domain.Experience(strings.TrimSpace(doc.Get("experienceLevel").String())),
		Skills:             stringList(doc.Get("skills")),
		MinMatchScore:      domain.DefaultMinMatchScore,
	}
	for _, m := range stringList(doc.Get("preferredMode")) {
		p.PreferredMode = append(p.PreferredMode, domain.Mode(m))
	}
	if v := doc.Get("minMatchScore"); v.Exists() && v.Type != gjson.Null {
		n, err := scoreValue(v)
		if err != nil {
			return domain.Preferences{}, err
		}
		p.MinMatchScore = n
	}
	return p, nil
}

// scoreValue accepts a JSON number or a string holding an integer, as the
// settings form sends it.
func scoreValue(v gjson.Result) (int, error) {
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), nil
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0, fmt.Errorf("minMatchScore %q is not a whole number", v.Str)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("minMatchScore must be a number, got %s", v.Raw)
	}
}

func stringList(v gjson.Result) []string {
	switch {
	case v.IsArray():
		var items []string
		for _, e := range v.Array() {
			items = append(items, e.String())
		}
		return domain.CleanList(items)
	case v.Type == gjson.String:
		return domain.SplitList(v.String())
	default:
		return nil
	}
}
