package policy

import (
	"log/slog"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
)

// Ensure implementations satisfy the interface.
var _ ports.DenialHandler = (*LogDenialHandler)(nil)
var _ ports.DenialHandler = (*NopDenialHandler)(nil)

// LogDenialHandler logs denials through slog.
type LogDenialHandler struct {
	logger *slog.Logger
}

// NewLogDenialHandler returns a handler writing to logger, or to the default
// logger when logger is nil.
func NewLogDenialHandler(logger *slog.Logger) *LogDenialHandler {
	return &LogDenialHandler{logger: logger}
}

func (h *LogDenialHandler) OnDenial(d entities.Descriptor, reason string) {
	logger := h.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("permission denied by policy",
		"kind", d.Name().String(),
		"scope", d.Scope(),
		"reason", reason)
}

// NopDenialHandler does nothing.
type NopDenialHandler struct{}

func (h *NopDenialHandler) OnDenial(d entities.Descriptor, reason string) {}
