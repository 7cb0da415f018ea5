package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jobnotify-engine/internal/app"
	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/rank"
)

type JobsHandler struct {
	App *app.Controller
}

type listJobsResponse struct {
	Configured bool      `json:"configured"`
	Count      int       `json:"count"`
	Jobs       []jobView `json:"jobs"`
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	ranked := h.App.Rank(q)
	saved := h.App.Saved()
	out := listJobsResponse{
		Configured: h.App.Settings().IsConfigured(),
		Count:      len(ranked),
		Jobs:       make([]jobView, 0, len(ranked)),
	}
	for _, rj := range ranked {
		out.Jobs = append(out.Jobs, toView(rj, saved))
	}
	writeJSON(w, out)
}

// GetByPath expects /jobs/{id}.
func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/jobs/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing job id")
		return
	}
	rj, err := h.App.Score(id)
	if errors.Is(err, app.ErrUnknownJob) {
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, toView(rj, h.App.Saved()))
}

func parseQuery(r *http.Request) (rank.Query, error) {
	v := r.URL.Query()
	q := rank.Query{
		Search:     v.Get("q"),
		Location:   strings.TrimSpace(v.Get("location")),
		Mode:       domain.Mode(strings.TrimSpace(v.Get("mode"))),
		Experience: domain.Experience(strings.TrimSpace(v.Get("experience"))),
		Source:     domain.Source(strings.TrimSpace(v.Get("source"))),
	}

	if q.Mode != "" && !q.Mode.Valid() {
		return q, errors.New("mode must be one of Remote, Hybrid, Onsite")
	}
	if q.Experience != "" && !q.Experience.Valid() {
		return q, errors.New("experience must be one of Fresher, 0-1, 1-3, 3-5")
	}
	if q.Source != "" && !q.Source.Valid() {
		return q, errors.New("source must be one of LinkedIn, Naukri, Indeed")
	}

	// empty sort is left empty so the configured default applies
	if s := v.Get("sort"); s != "" {
		key, err := rank.ParseSortKey(s)
		if err != nil {
			return q, err
		}
		q.Sort = key
	}

	if s := v.Get("only_matches"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return q, errors.New("only_matches must be a boolean")
		}
		q.OnlyMatches = b
	}
	return q, nil
}
