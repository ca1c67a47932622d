package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging events at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// Register installs h as the layout, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetLayoutHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, passID string, tileCount, columns int) {
	h.Logger.Debug("layout start", "pass", passID, "tiles", tileCount, "columns", columns)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, passID string, rows int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "pass", passID, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout complete", "pass", passID, "rows", rows, "duration", d)
}

func (h *LogHooks) OnRelocationSkipped(_ context.Context, passID string, code string) {
	h.Logger.Debug("relocation skipped", "pass", passID, "code", code)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.Logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ LayoutHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
