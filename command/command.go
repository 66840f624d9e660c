// Package command defines the DRAM commands that drive the power analysis.
package command

import "fmt"

// Location identifies the target of a command inside a channel.
//
// Bank is the index of the bank inside its rank. BankGroup, Row, and Column
// are optional and only some commands or reports use them.
type Location struct {
	Rank      int
	BankGroup int
	Bank      int
	Row       int
	Column    int
}

// Command is a time-stamped operation issued to the DRAM. A Command is a
// value. The With methods return modified copies.
type Command struct {
	Time     int64
	Kind     Kind
	Location Location
	Payload  []byte
}

// New creates a command targeting a bank of a rank.
func New(time int64, kind Kind, rank, bank int) Command {
	return Command{
		Time: time,
		Kind: kind,
		Location: Location{
			Rank: rank,
			Bank: bank,
		},
	}
}

// WithTime returns a copy of the command issued at another cycle.
func (c Command) WithTime(time int64) Command {
	c.Time = time
	return c
}

// WithKind returns a copy of the command with a different kind.
func (c Command) WithKind(kind Kind) Command {
	c.Kind = kind
	return c
}

// WithLocation returns a copy of the command with a different target.
func (c Command) WithLocation(loc Location) Command {
	c.Location = loc
	return c
}

func (c Command) String() string {
	return fmt.Sprintf("%s@%d[r%d,b%d]",
		c.Kind, c.Time, c.Location.Rank, c.Location.Bank)
}
