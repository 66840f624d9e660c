package analysis

import "github.com/sarchlab/drampower/command"

//go:generate mockgen -destination "mock_timingspec_test.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/drampower/analysis TimingSpec

// TimingSpec provides the device geometry and the timing constants that the
// state machines need. All durations are in clock cycles.
type TimingSpec interface {
	NumRanks() int
	NumBankGroups() int
	NumBanks() int

	RAS() int64
	RP() int64
	RCD() int64
	RFC() int64
	XP() int64
	XPDLL() int64
	CKESR() int64

	// ExitSelfRefresh is the standby time charged after a self-refresh exit.
	ExitSelfRefresh() int64

	// CompletionLatency is the number of cycles a command keeps the device
	// busy.
	CompletionLatency(kind command.Kind) int64

	// PrechargeOffset is the distance from an auto-precharge access to the
	// implied precharge.
	PrechargeOffset(kind command.Kind) int64
}
