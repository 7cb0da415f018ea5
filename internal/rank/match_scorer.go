package rank

import (
	"strings"

	"jobnotify-engine/internal/domain"
)

// Signal tags reported by MatchScorer.
const (
	TagTitle       = "title"
	TagDescription = "description"
	TagLocation    = "location"
	TagMode        = "mode"
	TagExperience  = "experience"
	TagSkills      = "skills"
	TagRecent      = "recent"
	TagSource      = "source"
)

type MatchScorer struct {
	Weights  Weights
	Settings domain.Settings
}

var _ Scorer = MatchScorer{}

func NewMatchScorer(w Weights, s domain.Settings) MatchScorer {
	return MatchScorer{Weights: w, Settings: s}
}

// Score adds the weight of every signal that fires and caps the sum at MaxScore.
// Unset preference fields never fire. Without saved preferences every job scores 0.
func (s MatchScorer) Score(job domain.Job) (int, []string) {
	prefs, ok := s.Settings.Get()
	if !ok {
		return 0, nil
	}
	w := s.Weights

	score := 0
	var tags []string
	hit := func(points int, tag string) {
		score += points
		tags = append(tags, tag)
	}

	keywords := lowerAll(prefs.RoleKeywords)
	if containsAny(strings.ToLower(job.Title), keywords) {
		hit(w.Title, TagTitle)
	}
	if containsAny(strings.ToLower(job.Description), keywords) {
		hit(w.Description, TagDescription)
	}

	if len(prefs.PreferredLocations) > 0 && equalsAny(job.Location, prefs.PreferredLocations) {
		hit(w.Location, TagLocation)
	}

	if len(prefs.PreferredMode) > 0 {
		for _, m := range prefs.PreferredMode {
			if strings.EqualFold(string(m), string(job.Mode)) {
				hit(w.Mode, TagMode)
				break
			}
		}
	}

	if prefs.ExperienceLevel != "" && strings.EqualFold(string(prefs.ExperienceLevel), string(job.Experience)) {
		hit(w.Experience, TagExperience)
	}

	if overlaps(lowerAll(job.Skills), lowerAll(prefs.Skills)) {
		hit(w.Skills, TagSkills)
	}

	if job.PostedDaysAgo >= 0 && job.PostedDaysAgo <= w.RecentDays {
		hit(w.Recent, TagRecent)
	}

	if w.BonusSource != "" && job.Source == w.BonusSource {
		hit(w.Source, TagSource)
	}

	switch {
	case score > MaxScore:
		score = MaxScore
	case score < 0:
		score = 0
	}
	return score, tags
}

// CalculateMatchScore scores job against settings with the default weights.
func CalculateMatchScore(job domain.Job, settings domain.Settings) int {
	score, _ := NewMatchScorer(DefaultWeights(), settings).Score(job)
	return score
}

// lowerAll lower-cases and trims tokens, dropping empty ones so that an empty
// keyword can never match every title.
func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func equalsAny(v string, set []string) bool {
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
