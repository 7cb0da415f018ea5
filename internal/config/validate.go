package config

import (
	"fmt"
	"strings"

	"jobnotify-engine/internal/domain"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Store.Backend = strings.ToLower(strings.TrimSpace(out.Store.Backend))
	if out.Store.Backend == "" {
		out.Store.Backend = BackendSQLite
	}
	out.Ranking.DefaultSort = strings.ToLower(strings.TrimSpace(out.Ranking.DefaultSort))
	out.Scoring.BonusSource = strings.TrimSpace(out.Scoring.BonusSource)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	switch out.Store.Backend {
	case BackendSQLite:
		if strings.TrimSpace(out.Store.SQLitePath) == "" {
			res.addErr("store.sqlite_path is required when store.backend=sqlite")
		}
	case BackendRedis:
		if strings.TrimSpace(out.Store.RedisURL) == "" {
			res.addErr("store.redis_url is required when store.backend=redis")
		}
	case BackendPostgres:
		if strings.TrimSpace(out.Store.DatabaseURL) == "" {
			res.addErr("store.database_url is required when store.backend=postgres")
		}
	default:
		res.addErr("store.backend must be one of sqlite, redis, postgres (got %q)", out.Store.Backend)
	}

	// scoring sanity
	w := out.Scoring.Weights
	checkWeight := func(name string, v int) {
		if v < 0 {
			res.addErr("scoring.weights.%s must be >= 0", name)
		}
	}
	checkWeight("title", w.Title)
	checkWeight("description", w.Description)
	checkWeight("location", w.Location)
	checkWeight("mode", w.Mode)
	checkWeight("experience", w.Experience)
	checkWeight("skills", w.Skills)
	checkWeight("recent", w.Recent)
	checkWeight("source", w.Source)

	if out.Scoring.RecentDays < 0 {
		res.addErr("scoring.recent_days must be >= 0")
	}
	if bs := out.Scoring.BonusSource; bs != "" && !domain.Source(bs).Valid() {
		res.addErr("scoring.bonus_source must be LinkedIn, Naukri or Indeed (got %q)", bs)
	}

	if w.Total() == 0 {
		res.addWarn("all scoring weights are 0; every job will score 0.")
	} else if w.Total() < domain.DefaultMinMatchScore {
		res.addWarn("scoring weights add up to %d, below the default match threshold of %d.", w.Total(), domain.DefaultMinMatchScore)
	}

	switch out.Ranking.DefaultSort {
	case "latest", "score", "salary":
	case "":
		out.Ranking.DefaultSort = "latest"
	default:
		res.addErr("ranking.default_sort must be latest, score or salary (got %q)", out.Ranking.DefaultSort)
	}

	return out, res
}
