package httpapi

import (
	"net/http"
	"time"

	"jobnotify-engine/internal/app"
)

type HealthHandler struct {
	App     *app.Controller
	Started time.Time
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":         true,
		"jobs":       len(h.App.Jobs()),
		"configured": h.App.Settings().IsConfigured(),
		"saved":      h.App.Saved().Len(),
		"uptime_s":   int(time.Since(h.Started).Seconds()),
	})
}
