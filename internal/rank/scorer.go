package rank

import "jobnotify-engine/internal/domain"

// Scorer rates a job from 0 to 100 and names the signals that contributed.
type Scorer interface {
	Score(job domain.Job) (score int, tags []string)
}
