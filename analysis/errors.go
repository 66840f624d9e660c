package analysis

import (
	"errors"
	"fmt"

	"github.com/sarchlab/drampower/command"
)

var (
	// ErrUnknownCommand is reported for a command whose kind is not known.
	ErrUnknownCommand = errors.New("unknown command type")

	// ErrOutOfRangeTarget is reported for a command that addresses a rank,
	// bank group, or bank the device does not have.
	ErrOutOfRangeTarget = errors.New("command target out of range")
)

// EvaluationError is a fatal error that stops the evaluation of a window.
type EvaluationError struct {
	Command command.Command
	Err     error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating %s: %v", e.Command, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
