package domain

import "strings"

const DefaultMinMatchScore = 40

// Preferences is what the settings form saves. It is always replaced as a whole.
type Preferences struct {
	RoleKeywords       []string   `json:"roleKeywords"`
	PreferredLocations []string   `json:"preferredLocations" validate:"dive,location"`
	PreferredMode      []Mode     `json:"preferredMode" validate:"dive,mode"`
	ExperienceLevel    Experience `json:"experienceLevel" validate:"omitempty,experience"`
	Skills             []string   `json:"skills"`
	MinMatchScore      int        `json:"minMatchScore" validate:"min=0,max=100"`
}

// Settings holds either nothing (the form was never saved) or a saved Preferences.
type Settings struct {
	prefs      Preferences
	configured bool
}

func Unconfigured() Settings { return Settings{} }

func Configured(p Preferences) Settings {
	return Settings{prefs: p, configured: true}
}

func (s Settings) Get() (Preferences, bool) { return s.prefs, s.configured }

func (s Settings) IsConfigured() bool { return s.configured }

// SplitList turns comma-separated form input into trimmed tokens.
func SplitList(raw string) []string {
	return CleanList(strings.Split(raw, ","))
}

// CleanList trims tokens and drops empty ones and case-insensitive duplicates;
// the first spelling wins.
func CleanList(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, part := range items {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := strings.ToLower(part)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, part)
	}
	return out
}
