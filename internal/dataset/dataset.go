// Package dataset holds the fixed job collection the engine ranks.
package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"jobnotify-engine/internal/domain"
)

//go:embed jobs.json
var embeddedJobs []byte

//go:embed schema.json
var jobSchema string

var ErrDuplicateID = errors.New("duplicate job id")

// Dataset is loaded once and never mutated afterwards, so it is safe for
// concurrent readers.
type Dataset struct {
	jobs []domain.Job
	byID map[string]int
}

// Load reads the dataset at path, or the embedded one when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Embedded()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	ds, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

func Embedded() (*Dataset, error) {
	ds, err := Parse(embeddedJobs)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return ds, nil
}

// Parse validates raw against the job schema, decodes it and normalizes text fields.
func Parse(raw []byte) (*Dataset, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var jobs []domain.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	ds := &Dataset{
		jobs: make([]domain.Job, 0, len(jobs)),
		byID: make(map[string]int, len(jobs)),
	}
	for _, j := range jobs {
		if _, dup := ds.byID[j.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, j.ID)
		}
		ds.byID[j.ID] = len(ds.jobs)
		ds.jobs = append(ds.jobs, normalize(j))
	}
	return ds, nil
}

func normalize(j domain.Job) domain.Job {
	j.Title = CleanText(j.Title)
	j.Company = CleanText(j.Company)
	j.Description = HTMLToText(j.Description)

	skills := make([]string, 0, len(j.Skills))
	for _, s := range j.Skills {
		if s = CleanText(s); s != "" {
			skills = append(skills, s)
		}
	}
	j.Skills = skills
	return j
}

func (d *Dataset) ByID(id string) (domain.Job, bool) {
	i, ok := d.byID[id]
	if !ok {
		return domain.Job{}, false
	}
	return d.jobs[i], true
}

// All returns the jobs in dataset order. The slice is a copy.
func (d *Dataset) All() []domain.Job {
	out := make([]domain.Job, len(d.jobs))
	copy(out, d.jobs)
	return out
}

func (d *Dataset) Len() int { return len(d.jobs) }
