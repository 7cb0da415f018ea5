package httpapi

import (
	"errors"
	"io"
	"net/http"

	"jobnotify-engine/internal/app"
	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/store"
)

const maxPrefsBody = 64 << 10

type PreferencesHandler struct {
	App *app.Controller
}

type preferencesResponse struct {
	Configured  bool                `json:"configured"`
	Preferences *domain.Preferences `json:"preferences"`
}

func (h PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, prefsResponse(h.App.Settings()))
}

// Put replaces the preferences as a whole. List fields may be sent as arrays
// or as the raw comma-separated text from the settings form.
func (h PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPrefsBody+1))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if len(body) > maxPrefsBody {
		WriteError(w, r, http.StatusRequestEntityTooLarge, "body_too_large", "preferences body too large")
		return
	}

	p, err := store.DecodePreferences(string(body))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if _, err := h.App.SavePreferences(r.Context(), p); err != nil {
		var ve *app.ValidationError
		if errors.As(err, &ve) {
			WriteErrorDetails(w, r, http.StatusBadRequest, "invalid_preferences", ve.Error(), ve.Fields)
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	writeJSON(w, prefsResponse(h.App.Settings()))
}

func (h PreferencesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.App.ResetPreferences(r.Context()); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reset_failed", err.Error())
		return
	}
	writeJSON(w, prefsResponse(h.App.Settings()))
}

func prefsResponse(s domain.Settings) preferencesResponse {
	p, ok := s.Get()
	if !ok {
		return preferencesResponse{}
	}
	return preferencesResponse{Configured: true, Preferences: &p}
}
