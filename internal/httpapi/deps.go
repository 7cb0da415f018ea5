package httpapi

import (
	"net/http"
	"sync/atomic"
	"time"

	"jobnotify-engine/internal/app"
	"jobnotify-engine/internal/events"
)

type Deps struct {
	App *app.Controller
	Hub *events.Hub

	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string

	Limiter  *ClientLimiter   // nil disables rate limiting
	Shutdown http.HandlerFunc // optional; mounted at /shutdown
	Started time.Time
}
