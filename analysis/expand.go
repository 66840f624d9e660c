package analysis

import (
	"cmp"
	"slices"

	"github.com/sarchlab/drampower/command"
)

// An expander turns the raw command batches of one rank into a time-ordered
// stream without auto-precharge commands. Commands past the end of a window
// wait in the carry-over queue until the next window.
type expander struct {
	spec           TimingSpec
	carryOver      []command.Command
	latestActivate []int64
}

func newExpander(spec TimingSpec) *expander {
	return &expander{
		spec:           spec,
		latestActivate: make([]int64, spec.NumBanks()),
	}
}

// expand returns the commands to evaluate in the window that ends at
// windowEnd.
func (e *expander) expand(
	cmds []command.Command,
	windowEnd int64,
	final bool,
) ([]command.Command, error) {
	for _, c := range cmds {
		if err := validate(e.spec, c); err != nil {
			return nil, err
		}
	}

	all := make([]command.Command, 0, len(e.carryOver)+len(cmds))
	all = append(all, e.carryOver...)
	all = append(all, cmds...)
	e.carryOver = nil

	sortCommands(all)

	out := make([]command.Command, 0, len(all))
	for _, c := range all {
		switch {
		case c.Kind == command.ACT:
			e.latestActivate[c.Location.Bank] = c.Time
		case c.Kind.IsAutoPrecharge():
			out = append(out, c.WithKind(c.Kind.WithoutAutoPrecharge()))
			out = append(out, e.impliedPrecharge(c))

			continue
		}

		out = append(out, c)
	}

	if !final {
		out = e.deferLateCommands(out, windowEnd)
	}

	sortCommands(out)

	if final && len(out) > 0 {
		last := out[len(out)-1]
		end := last.Time + e.spec.CompletionLatency(last.Kind) - 1
		out = append(out, command.Command{
			Time:     max(last.Time, end),
			Kind:     command.NOP,
			Location: last.Location,
		})
	}

	return out, nil
}

func (e *expander) impliedPrecharge(c command.Command) command.Command {
	preTime := max(
		c.Time+e.spec.PrechargeOffset(c.Kind),
		e.latestActivate[c.Location.Bank]+e.spec.RAS(),
	)

	return command.Command{
		Time:     preTime,
		Kind:     command.PRE,
		Location: c.Location,
	}
}

func (e *expander) deferLateCommands(
	cmds []command.Command,
	windowEnd int64,
) []command.Command {
	kept := cmds[:0]
	for _, c := range cmds {
		if c.Time > windowEnd {
			e.carryOver = append(e.carryOver, c)
			continue
		}

		kept = append(kept, c)
	}

	return kept
}

// pending returns the number of commands waiting for a later window.
func (e *expander) pending() int {
	return len(e.carryOver)
}

// sortCommands orders commands by time. At equal times precharges go first
// so that a same-cycle activate or refresh sees the bank closed.
func sortCommands(cmds []command.Command) {
	slices.SortStableFunc(cmds, func(a, b command.Command) int {
		if a.Time != b.Time {
			return cmp.Compare(a.Time, b.Time)
		}

		return cmp.Compare(sortPriority(a.Kind), sortPriority(b.Kind))
	})
}

func sortPriority(k command.Kind) int {
	if k.IsPrecharge() {
		return 0
	}

	return 1
}
