package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a command name cannot be recognized.
var ErrUnknownKind = errors.New("unknown command kind")

// Kind is the type of a DRAM command.
type Kind int

// All the supported command kinds.
const (
	KindInvalid Kind = iota
	ACT
	RD
	WR
	RDA
	WRA
	PRE
	PREA
	REF
	REFA
	REFB
	REFSB
	REFP2B
	PDEA
	PDEAS
	PDXA
	PDEP
	PDEPS
	PDXP
	SREFEN
	SREFEX
	DSMEN
	DSMEX
	NOP
	END
	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid: "INVALID",
	ACT:         "ACT",
	RD:          "RD",
	WR:          "WR",
	RDA:         "RDA",
	WRA:         "WRA",
	PRE:         "PRE",
	PREA:        "PREA",
	REF:         "REF",
	REFA:        "REFA",
	REFB:        "REFB",
	REFSB:       "REFSB",
	REFP2B:      "REFP2B",
	PDEA:        "PDEA",
	PDEAS:       "PDEAS",
	PDXA:        "PDXA",
	PDEP:        "PDEP",
	PDEPS:       "PDEPS",
	PDXP:        "PDXP",
	SREFEN:      "SREFEN",
	SREFEX:      "SREFEX",
	DSMEN:       "DSMEN",
	DSMEX:       "DSMEX",
	NOP:         "NOP",
	END:         "END",
}

// Spellings used by older trace files.
var legacyNames = map[string]Kind{
	"ACTB":      ACT,
	"PREB":      PRE,
	"PDN_F_ACT": PDEA,
	"PDN_S_ACT": PDEAS,
	"PDN_F_PRE": PDEP,
	"PDN_S_PRE": PDEPS,
	"PUP_ACT":   PDXA,
	"PUP_PRE":   PDXP,
	"SREN":      SREFEN,
	"SREX":      SREFEX,
}

func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// IsValid returns true if the kind is one of the known command kinds.
func (k Kind) IsValid() bool {
	return k > KindInvalid && k < numKinds
}

// ParseKind converts a command name into a Kind. Names are case-insensitive
// and the legacy power-down and self-refresh spellings are accepted.
func ParseKind(name string) (Kind, error) {
	n := strings.ToUpper(strings.TrimSpace(name))

	for k := ACT; k < numKinds; k++ {
		if kindNames[k] == n {
			return k, nil
		}
	}

	if k, ok := legacyNames[n]; ok {
		return k, nil
	}

	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Kinds returns all the valid command kinds in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds-1)
	for k := ACT; k < numKinds; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// IsAutoPrecharge returns true for reads and writes that close the row when
// they complete.
func (k Kind) IsAutoPrecharge() bool {
	return k == RDA || k == WRA
}

// WithoutAutoPrecharge returns the plain read or write kind for RDA and WRA.
// Other kinds are returned unchanged.
func (k Kind) WithoutAutoPrecharge() Kind {
	switch k {
	case RDA:
		return RD
	case WRA:
		return WR
	default:
		return k
	}
}

// IsPrecharge returns true for PRE and PREA.
func (k Kind) IsPrecharge() bool {
	return k == PRE || k == PREA
}

// IsRefresh returns true for every all-bank and per-bank refresh kind.
func (k Kind) IsRefresh() bool {
	switch k {
	case REF, REFA, REFB, REFSB, REFP2B:
		return true
	default:
		return false
	}
}

// IsBankCommand returns true for commands that operate on the memory array.
func (k Kind) IsBankCommand() bool {
	switch k {
	case ACT, RD, WR, RDA, WRA, PRE, PREA:
		return true
	default:
		return k.IsRefresh()
	}
}

// IsPowerEntry returns true for power-down, self-refresh, and deep-sleep
// entry commands.
func (k Kind) IsPowerEntry() bool {
	switch k {
	case PDEA, PDEAS, PDEP, PDEPS, SREFEN, DSMEN:
		return true
	default:
		return false
	}
}

// IsPowerExit returns true for power-down, self-refresh, and deep-sleep exit
// commands.
func (k Kind) IsPowerExit() bool {
	switch k {
	case PDXA, PDXP, SREFEX, DSMEX:
		return true
	default:
		return false
	}
}
