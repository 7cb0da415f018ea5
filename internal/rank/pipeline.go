package rank

import (
	"fmt"
	"sort"
	"strings"

	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/salary"
)

type SortKey string

const (
	SortLatest SortKey = "latest"
	SortScore  SortKey = "score"
	SortSalary SortKey = "salary"
)

// ParseSortKey maps user input to a SortKey. Empty input means latest.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortLatest, nil
	case SortLatest, SortScore, SortSalary:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want latest, score or salary)", s)
	}
}

// Query is one dashboard request. Zero-valued filters pass everything through.
type Query struct {
	Search      string
	Location    string
	Mode        domain.Mode
	Experience  domain.Experience
	Source      domain.Source
	Sort        SortKey
	OnlyMatches bool
}

// Ranked is a job with the score computed for the current preferences.
type Ranked struct {
	Job      domain.Job `json:"job"`
	Score    int        `json:"score"`
	Category Category   `json:"category"`
	Tags     []string   `json:"tags"`

	pay float64
}

// Rank filters and orders jobs. It is recomputed from scratch on every call:
//  1. search text against title or company
//  2. exact location, mode, experience and source filters
//  3. threshold, when OnlyMatches is set and preferences exist
//  4. stable sort by the requested key
func (s MatchScorer) Rank(jobs []domain.Job, q Query) []Ranked {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	prefs, configured := s.Settings.Get()

	out := make([]Ranked, 0, len(jobs))
	for _, j := range jobs {
		if needle != "" &&
			!strings.Contains(strings.ToLower(j.Title), needle) &&
			!strings.Contains(strings.ToLower(j.Company), needle) {
			continue
		}
		if q.Location != "" && j.Location != q.Location {
			continue
		}
		if q.Mode != "" && j.Mode != q.Mode {
			continue
		}
		if q.Experience != "" && j.Experience != q.Experience {
			continue
		}
		if q.Source != "" && j.Source != q.Source {
			continue
		}

		score, tags := s.Score(j)
		if q.OnlyMatches && configured && score < prefs.MinMatchScore {
			continue
		}
		out = append(out, Ranked{
			Job:      j,
			Score:    score,
			Category: CategoryFor(score),
			Tags:     tags,
			pay:      salary.ExtractSalaryValue(j.SalaryRange),
		})
	}

	switch q.Sort {
	case SortScore:
		sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	case SortSalary:
		sort.SliceStable(out, func(a, b int) bool { return out[a].pay > out[b].pay })
	default:
		sort.SliceStable(out, func(a, b int) bool { return out[a].Job.PostedDaysAgo < out[b].Job.PostedDaysAgo })
	}
	return out
}

// RankJobs is Rank with the default weights, returning only the jobs.
func RankJobs(jobs []domain.Job, q Query, settings domain.Settings) []domain.Job {
	ranked := NewMatchScorer(DefaultWeights(), settings).Rank(jobs, q)
	out := make([]domain.Job, len(ranked))
	for i, r := range ranked {
		out[i] = r.Job
	}
	return out
}
