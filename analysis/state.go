package analysis

import "fmt"

// BankState is the array state of a bank.
type BankState int

// A list of bank states.
const (
	BankPrecharged BankState = iota
	BankActive
)

func (s BankState) String() string {
	switch s {
	case BankPrecharged:
		return "PRECHARGED"
	case BankActive:
		return "ACTIVE"
	default:
		return fmt.Sprintf("BankState(%d)", int(s))
	}
}

// PowerMode is the power state of a rank.
type PowerMode int

// A list of rank power modes.
const (
	NotInPowerDown PowerMode = iota
	PowerDownActiveFast
	PowerDownActiveSlow
	PowerDownPrechargeFast
	PowerDownPrechargeSlow
	SelfRefresh
	DeepSleep
)

var powerModeNames = []string{
	"NOT_IN_POWERDOWN",
	"PDN_ACT_FAST",
	"PDN_ACT_SLOW",
	"PDN_PRE_FAST",
	"PDN_PRE_SLOW",
	"SELF_REFRESH",
	"DEEP_SLEEP",
}

func (m PowerMode) String() string {
	if m < 0 || int(m) >= len(powerModeNames) {
		return fmt.Sprintf("PowerMode(%d)", int(m))
	}

	return powerModeNames[m]
}

// IsPowerDown returns true for the four power-down modes.
func (m PowerMode) IsPowerDown() bool {
	return m >= PowerDownActiveFast && m <= PowerDownPrechargeSlow
}

func (m PowerMode) isActivePowerDown() bool {
	return m == PowerDownActiveFast || m == PowerDownActiveSlow
}

func (m PowerMode) isSlowExit() bool {
	return m == PowerDownActiveSlow || m == PowerDownPrechargeSlow
}
