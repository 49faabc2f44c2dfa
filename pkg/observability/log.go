package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and watch events to a logger at debug level,
// failures included. Callers report failures to the user themselves.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnCompileStart(_ context.Context, source string) {
	h.logger.Debug("compile started", "source", source)
}

func (h *LogHooks) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "stage", stage, "duration", d, "err", err)
		return
	}
	h.logger.Debug("stage done", "stage", stage, "duration", d)
}

func (h *LogHooks) OnCompileComplete(_ context.Context, source string, slides int, d time.Duration, err error) {
	h.logger.Debug("compile finished", "source", source, "slides", slides, "duration", d, "ok", err == nil)
}

func (h *LogHooks) OnTrigger(_ context.Context, path string, events int) {
	h.logger.Debug("change detected", "path", path, "events", events)
}

func (h *LogHooks) OnError(_ context.Context, path string, err error) {
	h.logger.Debug("watch error", "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ WatchHooks    = (*LogHooks)(nil)
)
