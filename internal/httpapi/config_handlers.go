package httpapi

import (
	"net/http"
	"path/filepath"
	"sync/atomic"

	"jobnotify-engine/internal/config"
)

// ConfigHandler exposes the engine config read-only; edits go through the
// config file and take effect on restart.
type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	// never echo credentials embedded in backend URLs
	cur.Store.RedisURL = redactURL(cur.Store.RedisURL)
	cur.Store.DatabaseURL = redactURL(cur.Store.DatabaseURL)
	writeJSON(w, cur)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.UserCfgPath)
	writeJSON(w, map[string]any{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	_, vr := config.NormalizeAndValidate(cur)
	writeJSON(w, vr)
}
