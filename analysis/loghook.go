package analysis

import (
	"log"

	"github.com/sarchlab/drampower/hooking"
)

// WarningLogger writes every warning of an engine to a logger.
type WarningLogger struct {
	hooking.LogHookBase
}

// NewWarningLogger creates a WarningLogger that writes to logger.
func NewWarningLogger(logger *log.Logger) *WarningLogger {
	h := new(WarningLogger)
	h.Logger = logger

	return h
}

// Func writes the warning carried by the hook context.
func (h *WarningLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosWarning {
		return
	}

	w, ok := ctx.Item.(Warning)
	if !ok {
		return
	}

	h.Printf("warning: %s", w)
}
