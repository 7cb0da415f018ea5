package rank

import (
	"jobnotify-engine/internal/config"
	"jobnotify-engine/internal/domain"
)

const MaxScore = 100

// Weights are the points each matching signal adds.
type Weights struct {
	Title       int
	Description int
	Location    int
	Mode        int
	Experience  int
	Skills      int
	Recent      int
	Source      int

	RecentDays  int
	BonusSource domain.Source
}

func DefaultWeights() Weights {
	return WeightsFromConfig(config.Default())
}

func WeightsFromConfig(cfg config.Config) Weights {
	sc := cfg.Scoring
	return Weights{
		Title:       sc.Weights.Title,
		Description: sc.Weights.Description,
		Location:    sc.Weights.Location,
		Mode:        sc.Weights.Mode,
		Experience:  sc.Weights.Experience,
		Skills:      sc.Weights.Skills,
		Recent:      sc.Weights.Recent,
		Source:      sc.Weights.Source,
		RecentDays:  sc.RecentDays,
		BonusSource: domain.Source(sc.BonusSource),
	}
}
