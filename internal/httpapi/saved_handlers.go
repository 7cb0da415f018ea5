package httpapi

import (
	"errors"
	"net/http"

	"jobnotify-engine/internal/app"
)

type SavedHandler struct {
	App *app.Controller
}

type savedResponse struct {
	IDs  []string  `json:"ids"`
	Jobs []jobView `json:"jobs"`
}

func (h SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	saved := h.App.Saved()
	out := savedResponse{IDs: saved.IDs(), Jobs: []jobView{}}
	for _, j := range h.App.SavedJobs() {
		rj, err := h.App.Score(j.ID)
		if err != nil {
			continue
		}
		out.Jobs = append(out.Jobs, toView(rj, saved))
	}
	writeJSON(w, out)
}

// ToggleByPath expects /saved/{id}.
func (h SavedHandler) ToggleByPath(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/saved/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing job id")
		return
	}
	saved, err := h.App.ToggleSaved(r.Context(), id)
	if errors.Is(err, app.ErrUnknownJob) {
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"id": id, "saved": saved})
}
