package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line. It implements all three
// hook interfaces, and serve registers it under --verbose.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) OnBuildComplete(_ context.Context, candidates, slots int, d time.Duration, err error) {
	h.Logger.Debug("hook: build", "candidates", candidates, "slots", slots, "duration", d, "err", err)
}

func (h LogHooks) OnValidate(_ context.Context, warnings int) {
	h.Logger.Debug("hook: validate", "warnings", warnings)
}

func (h LogHooks) OnSolveComplete(_ context.Context, rows, cols, total int, d time.Duration, err error) {
	h.Logger.Debug("hook: solve", "rows", rows, "cols", cols, "total_cost", total, "duration", d, "err", err)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("hook: cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("hook: cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("hook: cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("hook: request", "method", method, "route", route)
}

func (h LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Debug("hook: response", "method", method, "route", route, "status", status, "duration", d)
}

// Register installs h for pipeline, cache and HTTP events.
func (h LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}
