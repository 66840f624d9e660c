package datarecording

import (
	"github.com/rs/xid"
	"github.com/sarchlab/drampower/analysis"
	"github.com/sarchlab/drampower/energy"
	"github.com/sarchlab/drampower/hooking"
)

// Table names used by the WindowRecorder.
const (
	RankTable    = "drampower_rank"
	BankTable    = "drampower_bank"
	WarningTable = "drampower_warning"
)

// RankRow is one rank of one evaluated window.
type RankRow struct {
	RunID       string
	WindowIndex int
	WindowStart int64
	WindowEnd   int64
	Rank        int
	PowerMode   string

	Refreshes     int64
	PrechargeAlls int64
	PowerDowns    int64
	SelfRefreshes int64
	DeepSleeps    int64

	ActiveCycles        int64
	PrechargeCycles     int64
	IdleActiveCycles    int64
	IdlePrechargeCycles int64
	PowerDownCycles     int64
	PowerUpCycles       int64
	SelfRefreshCycles   int64
	DeepSleepCycles     int64

	// Energy is the total energy of the rank in pJ. It is 0 when the
	// recorder has no energy calculator.
	Energy float64
}

// BankRow is one bank of one evaluated window.
type BankRow struct {
	RunID       string
	WindowIndex int
	Rank        int
	Bank        int
	State       string

	Activates  int64
	Precharges int64
	Reads      int64
	Writes     int64
	Refreshes  int64

	ActiveCycles        int64
	PrechargeCycles     int64
	IdleActiveCycles    int64
	IdlePrechargeCycles int64
}

// WarningRow is one warning.
type WarningRow struct {
	RunID       string
	WindowIndex int
	Time        int64
	Kind        string
	Rank        int
	Bank        int
	Command     string
	Message     string
}

// WindowRecorder is a hook that stores the result of every window evaluated
// by an analysis engine.
type WindowRecorder struct {
	recorder DataRecorder
	calc     *energy.Calculator

	runID  string
	window int
}

// NewWindowRecorder creates the result tables in the recorder and returns a
// hook that fills them.
func NewWindowRecorder(recorder DataRecorder) *WindowRecorder {
	recorder.CreateTable(RankTable, RankRow{})
	recorder.CreateTable(BankTable, BankRow{})
	recorder.CreateTable(WarningTable, WarningRow{})

	return &WindowRecorder{
		recorder: recorder,
		runID:    xid.New().String(),
	}
}

// WithEnergy adds the energy of every rank to the rank rows.
func (r *WindowRecorder) WithEnergy(calc *energy.Calculator) *WindowRecorder {
	r.calc = calc
	return r
}

// RunID identifies the rows written by this recorder.
func (r *WindowRecorder) RunID() string {
	return r.runID
}

// Windows returns the number of windows recorded so far.
func (r *WindowRecorder) Windows() int {
	return r.window
}

// Func records warnings and closed windows.
func (r *WindowRecorder) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case analysis.HookPosWarning:
		r.recordWarning(ctx.Item.(analysis.Warning))
	case analysis.HookPosWindowClosed:
		r.recordWindow(ctx.Item.(analysis.Snapshot))
		r.window++
	}
}

// Flush writes the buffered rows into the database.
func (r *WindowRecorder) Flush() error {
	return r.recorder.Flush()
}

func (r *WindowRecorder) recordWarning(w analysis.Warning) {
	r.recorder.InsertData(WarningTable, WarningRow{
		RunID:       r.runID,
		WindowIndex: r.window,
		Time:        w.Time,
		Kind:        w.Kind.String(),
		Rank:        w.Rank,
		Bank:        w.Bank,
		Command:     w.Command.String(),
		Message:     w.Message,
	})
}

func (r *WindowRecorder) recordWindow(s analysis.Snapshot) {
	for _, rs := range s.Ranks {
		row := RankRow{
			RunID:       r.runID,
			WindowIndex: r.window,
			WindowStart: s.Window.Start,
			WindowEnd:   s.Window.End,
			Rank:        rs.Rank,
			PowerMode:   rs.PowerMode.String(),

			Refreshes:     rs.Refreshes,
			PrechargeAlls: rs.PrechargeAlls,
			PowerDowns: rs.ActivePowerDownsFast + rs.ActivePowerDownsSlow +
				rs.PrechargePowerDownsFast + rs.PrechargePowerDownsSlow,
			SelfRefreshes: rs.SelfRefreshes,
			DeepSleeps:    rs.DeepSleeps,

			ActiveCycles:        rs.ActiveCycles,
			PrechargeCycles:     rs.PrechargeCycles,
			IdleActiveCycles:    rs.IdleActiveCycles,
			IdlePrechargeCycles: rs.IdlePrechargeCycles,
			PowerDownCycles:     rs.PowerDownCycles(),
			PowerUpCycles: rs.ActivePowerUpCycles + rs.PrechargePowerUpCycles +
				rs.SelfRefreshPowerUpCycles,
			SelfRefreshCycles: rs.SelfRefreshResidency(),
			DeepSleepCycles:   rs.DeepSleepCycles,
		}

		if r.calc != nil {
			row.Energy = r.calc.Rank(rs).Total()
		}

		r.recorder.InsertData(RankTable, row)

		for _, b := range rs.Banks {
			r.recorder.InsertData(BankTable, BankRow{
				RunID:       r.runID,
				WindowIndex: r.window,
				Rank:        rs.Rank,
				Bank:        b.Bank,
				State:       b.State.String(),

				Activates:  b.Activates,
				Precharges: b.Precharges,
				Reads:      b.Reads,
				Writes:     b.Writes,
				Refreshes:  b.Refreshes,

				ActiveCycles:        b.ActiveCycles,
				PrechargeCycles:     b.PrechargeCycles,
				IdleActiveCycles:    b.IdleActiveCycles,
				IdlePrechargeCycles: b.IdlePrechargeCycles,
			})
		}
	}
}
