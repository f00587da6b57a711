package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialstack/pkg/observability"
)

// logHooks logs pipeline and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.ServerHooks   = logHooks{}
)

// registerLogHooks installs logHooks for both hook registries.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetServerHooks(h)
}

func (h logHooks) OnTransformStart(_ context.Context, rows int) {
	h.logger.Debug("transform started", "rows", rows)
}

func (h logHooks) OnTransformComplete(_ context.Context, segments, layers int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("transform failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("transform done", "segments", segments, "layers", layers, "duration", d)
}

func (h logHooks) OnLayoutStart(_ context.Context, segments int) {
	h.logger.Debug("layout started", "segments", segments)
}

func (h logHooks) OnLayoutComplete(_ context.Context, elements int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("layout done", "elements", elements, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err, "duration", d)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request received", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response sent", "method", method, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Warn("request failed", "method", method, "path", path, "err", err)
}
