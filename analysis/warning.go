package analysis

import (
	"fmt"

	"github.com/sarchlab/drampower/command"
)

// WarningKind classifies the non-fatal anomalies found in a trace.
type WarningKind int

// A list of warning kinds.
const (
	// IllegalStateTransition is a command that is not allowed in the
	// current bank or rank state.
	IllegalStateTransition WarningKind = iota

	// NegativeDuration is a cycle delta that would be negative because of
	// out-of-order timestamps. The delta is counted as 0.
	NegativeDuration

	// SelfRefreshBelowMinimum is a self-refresh shorter than tCKESR.
	SelfRefreshBelowMinimum

	// IssuedDuringPowerDown is an array command sent while the rank is in
	// a power-down, self-refresh, or deep-sleep mode.
	IssuedDuringPowerDown
)

func (k WarningKind) String() string {
	switch k {
	case IllegalStateTransition:
		return "IllegalStateTransition"
	case NegativeDuration:
		return "NegativeDuration"
	case SelfRefreshBelowMinimum:
		return "SelfRefreshBelowMinimum"
	case IssuedDuringPowerDown:
		return "IssuedDuringPowerDown"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a recoverable anomaly found while evaluating a command.
type Warning struct {
	Time    int64
	Kind    WarningKind
	Rank    int
	Bank    int
	Command command.Kind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%d %s rank %d bank %d %s: %s",
		w.Time, w.Kind, w.Rank, w.Bank, w.Command, w.Message)
}
