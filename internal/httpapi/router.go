package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{App: d.App, Started: d.Started}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Jobs
	jh := JobsHandler{App: d.App}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.GetByPath, // expects /jobs/{id}
	}))

	// Preferences
	ph := PreferencesHandler{App: d.App}
	mux.HandleFunc("/preferences", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    ph.Get,
		http.MethodPut:    ph.Put,
		http.MethodDelete: ph.Delete,
	}))

	// Saved jobs
	sh := SavedHandler{App: d.App}
	mux.HandleFunc("/saved", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.List,
	}))
	mux.HandleFunc("/saved/", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.ToggleByPath, // expects /saved/{id}
	}))

	// Config (read-only)
	if d.CfgVal != nil {
		ch := ConfigHandler{CfgVal: d.CfgVal, UserCfgPath: d.UserCfgPath}
		mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Get,
		}))
		mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Path,
		}))
		mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Validate,
		}))

		// Secrets (use CfgVal, NOT a snapshot cfg)
		sech := SecretsHandler{CfgVal: d.CfgVal}
		mux.HandleFunc("/secrets/store", methodMux(map[string]http.HandlerFunc{
			http.MethodPost: sech.SetStorePassword,
		}))
	}

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	if d.Shutdown != nil {
		mux.HandleFunc("/shutdown", d.Shutdown)
	}

	return mux
}

// NewHandler wraps the mux in the standard middleware chain.
func NewHandler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover, AccessLog, Cors, RateLimit(d.Limiter))
}
