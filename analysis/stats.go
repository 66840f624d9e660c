package analysis

// BankStats are the counters of one bank. Event counts and cycle counts are
// both in units of commands or clock cycles.
type BankStats struct {
	Bank int

	Activates  int64
	Precharges int64
	Reads      int64
	Writes     int64
	Refreshes  int64

	ActiveCycles        int64
	PrechargeCycles     int64
	IdleActiveCycles    int64
	IdlePrechargeCycles int64

	// State is the bank state when the window closed.
	State BankState
}

// Add returns the element-wise sum of two bank counters. The state of the
// later operand is kept.
func (s BankStats) Add(o BankStats) BankStats {
	s.Activates += o.Activates
	s.Precharges += o.Precharges
	s.Reads += o.Reads
	s.Writes += o.Writes
	s.Refreshes += o.Refreshes
	s.ActiveCycles += o.ActiveCycles
	s.PrechargeCycles += o.PrechargeCycles
	s.IdleActiveCycles += o.IdleActiveCycles
	s.IdlePrechargeCycles += o.IdlePrechargeCycles
	s.State = o.State

	return s
}

// RankStats are the counters of one rank.
type RankStats struct {
	Rank  int
	Banks []BankStats

	Refreshes     int64
	PrechargeAlls int64

	ActiveCycles        int64
	PrechargeCycles     int64
	IdleActiveCycles    int64
	IdlePrechargeCycles int64

	ActivePowerDownsFast    int64
	ActivePowerDownsSlow    int64
	PrechargePowerDownsFast int64
	PrechargePowerDownsSlow int64

	ActivePowerDownFastCycles    int64
	ActivePowerDownSlowCycles    int64
	PrechargePowerDownFastCycles int64
	PrechargePowerDownSlowCycles int64

	ActivePowerUpCycles    int64
	PrechargePowerUpCycles int64

	SelfRefreshes                     int64
	SelfRefreshCycles                 int64
	SelfRefreshRefreshActiveCycles    int64
	SelfRefreshRefreshPrechargeCycles int64
	SelfRefreshExitActiveCycles       int64
	SelfRefreshExitPrechargeCycles    int64
	SelfRefreshPowerUpCycles          int64

	DeepSleeps      int64
	DeepSleepCycles int64

	// PowerMode is the rank power mode when the window closed.
	PowerMode PowerMode
}

// Add returns the element-wise sum of two rank counters.
func (s RankStats) Add(o RankStats) RankStats {
	banks := make([]BankStats, max(len(s.Banks), len(o.Banks)))
	for i := range banks {
		if i < len(s.Banks) {
			banks[i] = s.Banks[i]
		}

		if i < len(o.Banks) {
			banks[i] = banks[i].Add(o.Banks[i])
			banks[i].Bank = o.Banks[i].Bank
		}
	}

	s.Banks = banks
	s.Refreshes += o.Refreshes
	s.PrechargeAlls += o.PrechargeAlls
	s.ActiveCycles += o.ActiveCycles
	s.PrechargeCycles += o.PrechargeCycles
	s.IdleActiveCycles += o.IdleActiveCycles
	s.IdlePrechargeCycles += o.IdlePrechargeCycles
	s.ActivePowerDownsFast += o.ActivePowerDownsFast
	s.ActivePowerDownsSlow += o.ActivePowerDownsSlow
	s.PrechargePowerDownsFast += o.PrechargePowerDownsFast
	s.PrechargePowerDownsSlow += o.PrechargePowerDownsSlow
	s.ActivePowerDownFastCycles += o.ActivePowerDownFastCycles
	s.ActivePowerDownSlowCycles += o.ActivePowerDownSlowCycles
	s.PrechargePowerDownFastCycles += o.PrechargePowerDownFastCycles
	s.PrechargePowerDownSlowCycles += o.PrechargePowerDownSlowCycles
	s.ActivePowerUpCycles += o.ActivePowerUpCycles
	s.PrechargePowerUpCycles += o.PrechargePowerUpCycles
	s.SelfRefreshes += o.SelfRefreshes
	s.SelfRefreshCycles += o.SelfRefreshCycles
	s.SelfRefreshRefreshActiveCycles += o.SelfRefreshRefreshActiveCycles
	s.SelfRefreshRefreshPrechargeCycles += o.SelfRefreshRefreshPrechargeCycles
	s.SelfRefreshExitActiveCycles += o.SelfRefreshExitActiveCycles
	s.SelfRefreshExitPrechargeCycles += o.SelfRefreshExitPrechargeCycles
	s.SelfRefreshPowerUpCycles += o.SelfRefreshPowerUpCycles
	s.DeepSleeps += o.DeepSleeps
	s.DeepSleepCycles += o.DeepSleepCycles
	s.PowerMode = o.PowerMode
	s.Rank = o.Rank

	return s
}

func (s RankStats) clone() RankStats {
	s.Banks = append([]BankStats(nil), s.Banks...)
	return s
}

// BankTotals sums the per-bank event and cycle counters of the rank.
func (s RankStats) BankTotals() BankStats {
	total := BankStats{Bank: -1}
	for _, b := range s.Banks {
		total = total.Add(b)
	}

	return total
}

// PowerDownCycles is the number of cycles spent in any of the four
// power-down modes.
func (s RankStats) PowerDownCycles() int64 {
	return s.ActivePowerDownFastCycles + s.ActivePowerDownSlowCycles +
		s.PrechargePowerDownFastCycles + s.PrechargePowerDownSlowCycles
}

// SelfRefreshResidency is the number of cycles attributed to self-refresh,
// including the implicit refresh and the part of it finished during exit.
func (s RankStats) SelfRefreshResidency() int64 {
	return s.SelfRefreshCycles +
		s.SelfRefreshRefreshActiveCycles + s.SelfRefreshRefreshPrechargeCycles +
		s.SelfRefreshExitActiveCycles + s.SelfRefreshExitPrechargeCycles
}

// BankCycles is the number of cycles bank b has been accounted for. Over a
// whole well-formed trace it equals the elapsed time.
func (s RankStats) BankCycles(b int) int64 {
	bank := s.Banks[b]

	return bank.ActiveCycles + bank.PrechargeCycles +
		s.PowerDownCycles() + s.SelfRefreshResidency() + s.DeepSleepCycles
}

// Window is the span of cycles [Start, End) covered by a snapshot.
type Window struct {
	Start int64
	End   int64
}

// Cycles returns the length of the window.
func (w Window) Cycles() int64 {
	return max(0, w.End-w.Start)
}

// Snapshot is the result of evaluating one or more windows.
type Snapshot struct {
	Window   Window
	Ranks    []RankStats
	Warnings []Warning
}

// Add combines two snapshots. The window becomes the union of both windows.
func (s Snapshot) Add(o Snapshot) Snapshot {
	out := Snapshot{
		Window: Window{
			Start: min(s.Window.Start, o.Window.Start),
			End:   max(s.Window.End, o.Window.End),
		},
		Ranks: make([]RankStats, max(len(s.Ranks), len(o.Ranks))),
	}

	if len(s.Ranks) == 0 {
		out.Window = o.Window
	} else if len(o.Ranks) == 0 {
		out.Window = s.Window
	}

	for i := range out.Ranks {
		if i < len(s.Ranks) {
			out.Ranks[i] = s.Ranks[i].clone()
		}

		if i < len(o.Ranks) {
			out.Ranks[i] = out.Ranks[i].Add(o.Ranks[i])
		}
	}

	out.Warnings = append(out.Warnings, s.Warnings...)
	out.Warnings = append(out.Warnings, o.Warnings...)

	return out
}
