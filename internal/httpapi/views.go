package httpapi

import (
	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/rank"
)

type jobView struct {
	Job      domain.Job    `json:"job"`
	Score    int           `json:"score"`
	Category rank.Category `json:"category"`
	Tags     []string      `json:"tags"`
	Saved    bool          `json:"saved"`
}

func toView(r rank.Ranked, saved domain.SavedJobs) jobView {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return jobView{
		Job:      r.Job,
		Score:    r.Score,
		Category: r.Category,
		Tags:     tags,
		Saved:    saved.Has(r.Job.ID),
	}
}
