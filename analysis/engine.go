// Package analysis tracks the bank and rank power states of a DRAM device
// from its command stream and counts the cycles spent in each state.
//
// Commands are evaluated in windows. Each window returns the counters
// accumulated within it, and the sum over consecutive windows equals the
// result of evaluating the whole stream at once.
package analysis

import (
	"fmt"

	"github.com/sarchlab/drampower/command"
	"github.com/sarchlab/drampower/hooking"
)

//go:generate mockgen -destination "mock_hooking_test.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/drampower/hooking Hook

// HookPosWarning marks the invocation of hooks for every warning. The item
// of the hook context is a Warning.
var HookPosWarning = &hooking.HookPos{Name: "Warning"}

// HookPosWindowClosed marks the invocation of hooks after a window is
// evaluated. The item of the hook context is the Snapshot of the window.
var HookPosWindowClosed = &hooking.HookPos{Name: "WindowClosed"}

// Engine evaluates the command stream of a memory channel.
type Engine struct {
	hooking.HookableBase

	name  string
	spec  TimingSpec
	ranks []*rank

	windowStart int64
	totals      Snapshot
}

// Name returns the name of the engine.
func (e *Engine) Name() string {
	return e.name
}

// EvaluateWindow evaluates a batch of commands. Commands later than
// windowEnd are kept for the next window unless final is set. On a fatal
// error no state is changed and the error is an *EvaluationError.
func (e *Engine) EvaluateWindow(
	cmds []command.Command,
	windowEnd int64,
	final bool,
) (Snapshot, error) {
	perRank := make([][]command.Command, len(e.ranks))

	for _, c := range cmds {
		if err := validate(e.spec, c); err != nil {
			return Snapshot{}, err
		}

		perRank[c.Location.Rank] = append(perRank[c.Location.Rank], c)
	}

	// The final window stretches until the last command has completed.
	boundary := windowEnd

	for i, r := range e.ranks {
		expanded, err := r.expander.expand(perRank[i], windowEnd, final)
		if err != nil {
			return Snapshot{}, err
		}

		for _, c := range expanded {
			r.handle(c)
		}

		if final && len(expanded) > 0 {
			boundary = max(boundary, expanded[len(expanded)-1].Time)
		}
	}

	snapshot := Snapshot{
		Window: Window{Start: e.windowStart, End: boundary},
		Ranks:  make([]RankStats, len(e.ranks)),
	}

	for i, r := range e.ranks {
		snapshot.Ranks[i] = r.closeWindow(boundary)
		snapshot.Warnings = append(snapshot.Warnings, r.takeWarnings()...)
		r.openWindow()
	}

	e.windowStart = snapshot.Window.End
	e.totals = e.totals.Add(snapshot)
	e.publish(snapshot)

	return snapshot, nil
}

// RunningTotals returns the counters accumulated since the first window.
func (e *Engine) RunningTotals() Snapshot {
	return e.totals.Add(Snapshot{})
}

// Pending returns the number of commands deferred to a later window.
func (e *Engine) Pending() int {
	n := 0
	for _, r := range e.ranks {
		n += r.expander.pending()
	}

	return n
}

func (e *Engine) publish(s Snapshot) {
	if e.NumHooks() == 0 {
		return
	}

	for _, w := range s.Warnings {
		e.InvokeHook(hooking.HookCtx{
			Domain: e,
			Pos:    HookPosWarning,
			Item:   w,
		})
	}

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    HookPosWindowClosed,
		Item:   s,
	})
}

func validate(spec TimingSpec, c command.Command) error {
	if !c.Kind.IsValid() {
		return &EvaluationError{Command: c, Err: ErrUnknownCommand}
	}

	loc := c.Location

	var err error

	switch {
	case loc.Rank < 0 || loc.Rank >= spec.NumRanks():
		err = fmt.Errorf("%w: rank %d of %d", ErrOutOfRangeTarget,
			loc.Rank, spec.NumRanks())
	case loc.Bank < 0 || loc.Bank >= spec.NumBanks():
		err = fmt.Errorf("%w: bank %d of %d", ErrOutOfRangeTarget,
			loc.Bank, spec.NumBanks())
	case loc.BankGroup < 0 || loc.BankGroup >= max(1, spec.NumBankGroups()):
		err = fmt.Errorf("%w: bank group %d of %d", ErrOutOfRangeTarget,
			loc.BankGroup, spec.NumBankGroups())
	}

	if err != nil {
		return &EvaluationError{Command: c, Err: err}
	}

	return nil
}
