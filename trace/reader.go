// Package trace reads DRAM command traces.
//
// A trace is a text file with one command per line:
//
//	timestamp,command,bank[,rank[,bankgroup]]
//
// Blank lines and lines starting with # are ignored. Rank and bank group
// default to 0.
package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/drampower/command"
)

// ErrMalformedLine is reported for lines that do not have the trace format.
var ErrMalformedLine = errors.New("malformed trace line")

// LineError locates an error in the trace.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("trace line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Reader reads commands from a trace.
type Reader struct {
	csv    *csv.Reader
	peeked *command.Command
	err    error
}

// NewReader creates a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	c := csv.NewReader(r)
	c.Comment = '#'
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = true
	c.ReuseRecord = true

	return &Reader{csv: c}
}

// Next returns the next command. It returns io.EOF at the end of the trace.
func (r *Reader) Next() (command.Command, error) {
	if r.peeked != nil {
		c := *r.peeked
		r.peeked = nil

		return c, nil
	}

	if r.err != nil {
		return command.Command{}, r.err
	}

	c, err := r.read()
	if err != nil {
		r.err = err
	}

	return c, err
}

// NextWindow returns up to n commands. final is true if no command follows
// the returned ones.
func (r *Reader) NextWindow(n int) (cmds []command.Command, final bool, err error) {
	for len(cmds) < n {
		c, err := r.Next()
		if err == io.EOF {
			return cmds, true, nil
		}

		if err != nil {
			return nil, false, err
		}

		cmds = append(cmds, c)
	}

	c, err := r.Next()
	switch {
	case err == io.EOF:
		return cmds, true, nil
	case err != nil:
		return nil, false, err
	}

	r.peeked = &c

	return cmds, false, nil
}

// NextBatch returns at least n commands. The batch extends over the commands
// that share the timestamp of its last command, so that a cycle is never
// split between two batches. final is true if no command follows the
// returned ones.
func (r *Reader) NextBatch(n int) (cmds []command.Command, final bool, err error) {
	cmds, final, err = r.NextWindow(n)
	if err != nil || final || len(cmds) == 0 {
		return cmds, final, err
	}

	last := cmds[len(cmds)-1].Time

	for r.peeked != nil && r.peeked.Time == last {
		cmds = append(cmds, *r.peeked)
		r.peeked = nil

		c, err := r.Next()
		switch {
		case err == io.EOF:
			return cmds, true, nil
		case err != nil:
			return nil, false, err
		}

		r.peeked = &c
	}

	return cmds, false, nil
}

// InputOffset returns the number of bytes consumed from the input so far.
func (r *Reader) InputOffset() int64 {
	return r.csv.InputOffset()
}

// ReadAll reads the remaining commands.
func (r *Reader) ReadAll() ([]command.Command, error) {
	var cmds []command.Command

	for {
		c, err := r.Next()
		if err == io.EOF {
			return cmds, nil
		}

		if err != nil {
			return nil, err
		}

		cmds = append(cmds, c)
	}
}

func (r *Reader) read() (command.Command, error) {
	record, err := r.csv.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return command.Command{}, &LineError{Line: parseErr.Line, Err: err}
		}

		return command.Command{}, err
	}

	line, _ := r.csv.FieldPos(0)

	c, err := parseRecord(record)
	if err != nil {
		return command.Command{}, &LineError{Line: line, Err: err}
	}

	return c, nil
}

func parseRecord(record []string) (command.Command, error) {
	if len(record) < 3 || len(record) > 5 {
		return command.Command{}, fmt.Errorf(
			"%w: %d fields, want 3 to 5", ErrMalformedLine, len(record))
	}

	t, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return command.Command{}, fmt.Errorf(
			"%w: timestamp %q", ErrMalformedLine, record[0])
	}

	kind, err := command.ParseKind(strings.TrimSpace(record[1]))
	if err != nil {
		return command.Command{}, err
	}

	var loc command.Location

	fields := []*int{&loc.Bank, &loc.Rank, &loc.BankGroup}
	names := []string{"bank", "rank", "bank group"}

	for i, f := range record[2:] {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return command.Command{}, fmt.Errorf(
				"%w: %s %q", ErrMalformedLine, names[i], f)
		}

		*fields[i] = v
	}

	return command.Command{Time: t, Kind: kind, Location: loc}, nil
}
