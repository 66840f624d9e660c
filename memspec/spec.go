// Package memspec describes the timing, geometry, and electrical parameters
// of a DRAM device.
package memspec

import (
	"errors"
	"fmt"

	"github.com/sarchlab/drampower/command"
)

// Timing holds the JEDEC timing constants, all measured in clock cycles.
type Timing struct {
	RAS   int64 `json:"RAS"`
	RP    int64 `json:"RP"`
	RCD   int64 `json:"RCD"`
	RC    int64 `json:"RC"`
	RFC   int64 `json:"RFC"`
	RFCPB int64 `json:"RFCPB"`
	REFI  int64 `json:"REFI"`
	RL    int64 `json:"RL"`
	WL    int64 `json:"WL"`
	AL    int64 `json:"AL"`
	DQSCK int64 `json:"DQSCK"`
	RTP   int64 `json:"RTP"`
	WR    int64 `json:"WR"`
	XP    int64 `json:"XP"`
	XPDLL int64 `json:"XPDLL"`
	XS    int64 `json:"XS"`
	XSDLL int64 `json:"XSDLL"`
	CKESR int64 `json:"CKESR"`
}

// Currents holds the IDD currents of one voltage domain in mA.
type Currents struct {
	IDD0   float64 `json:"idd0"`
	IDD2N  float64 `json:"idd2n"`
	IDD2P0 float64 `json:"idd2p0"`
	IDD2P1 float64 `json:"idd2p1"`
	IDD3N  float64 `json:"idd3n"`
	IDD3P0 float64 `json:"idd3p0"`
	IDD3P1 float64 `json:"idd3p1"`
	IDD4R  float64 `json:"idd4r"`
	IDD4W  float64 `json:"idd4w"`
	IDD5   float64 `json:"idd5"`
	IDD5PB float64 `json:"idd5pb"`
	IDD6   float64 `json:"idd6"`
	IDD6DS float64 `json:"idd6ds"`
}

// Domain is a supply rail together with the currents drawn from it.
type Domain struct {
	Voltage  float64  `json:"voltage"`
	Currents Currents `json:"currents"`
}

// Spec is a complete description of a memory device.
type Spec struct {
	Name        string   `json:"name"`
	Protocol    Protocol `json:"protocol"`
	ClockMHz    float64  `json:"clockMHz"`
	DataRate    int64    `json:"dataRate"`
	BurstLength int64    `json:"burstLength"`
	Ranks       int      `json:"ranks"`
	BankGroups  int      `json:"bankGroups"`
	Banks       int      `json:"banks"`

	Timing Timing `json:"timing"`

	// Domains lists the supply rails. The first one is VDD. Devices with a
	// second rail (VDD2 or VPP) list it second.
	Domains []Domain `json:"domains"`
}

// Freq returns the command clock frequency.
func (s *Spec) Freq() Freq {
	return Freq(s.ClockMHz) * MHz
}

// NumRanks returns the number of ranks.
func (s *Spec) NumRanks() int { return s.Ranks }

// NumBankGroups returns the number of bank groups in each rank.
func (s *Spec) NumBankGroups() int { return s.BankGroups }

// NumBanks returns the number of banks in each rank.
func (s *Spec) NumBanks() int { return s.Banks }

// RAS returns the activate-to-precharge time.
func (s *Spec) RAS() int64 { return s.Timing.RAS }

// RP returns the precharge time.
func (s *Spec) RP() int64 { return s.Timing.RP }

// RCD returns the activate-to-read/write time.
func (s *Spec) RCD() int64 { return s.Timing.RCD }

// RFC returns the all-bank refresh cycle time.
func (s *Spec) RFC() int64 { return s.Timing.RFC }

// XP returns the fast power-down exit time.
func (s *Spec) XP() int64 { return s.Timing.XP }

// XPDLL returns the slow power-down exit time.
func (s *Spec) XPDLL() int64 {
	if s.Timing.XPDLL == 0 {
		return s.Timing.XP
	}

	return s.Timing.XPDLL
}

// CKESR returns the minimum self-refresh residency.
func (s *Spec) CKESR() int64 { return s.Timing.CKESR }

// ExitSelfRefresh returns the number of cycles the device draws standby
// current after leaving self-refresh. Devices with a DLL are charged
// tXSDLL - tRCD, the others the whole tXS.
func (s *Spec) ExitSelfRefresh() int64 {
	if !s.Protocol.HasDLL() {
		return s.Timing.XS
	}

	xs := s.Timing.XSDLL
	if xs == 0 {
		xs = s.Timing.XS
	}

	return max(0, xs-s.Timing.RCD)
}

func (s *Spec) burstCycles() int64 {
	if s.DataRate == 0 {
		return s.BurstLength
	}

	return s.BurstLength / s.DataRate
}

// CompletionLatency returns the number of cycles a command occupies the
// device before its effect is complete.
func (s *Spec) CompletionLatency(kind command.Kind) int64 {
	t := &s.Timing

	switch kind {
	case command.RD, command.RDA:
		return t.RL + t.DQSCK + 1 + s.burstCycles()
	case command.WR, command.WRA:
		return t.WL + s.burstCycles() + t.WR
	case command.ACT:
		return t.RCD
	case command.PRE, command.PREA:
		return t.RP
	case command.REF, command.REFA:
		return t.RFC
	case command.REFB, command.REFSB, command.REFP2B:
		if t.RFCPB == 0 {
			return t.RFC
		}

		return t.RFCPB
	default:
		return 1
	}
}

// PrechargeOffset returns the distance between an auto-precharge read or
// write and the moment the implied precharge starts.
func (s *Spec) PrechargeOffset(kind command.Kind) int64 {
	t := &s.Timing

	switch kind {
	case command.RD, command.RDA:
		return t.AL + max(t.RTP, 4)
	case command.WR, command.WRA:
		return s.burstCycles() + t.WL + t.WR
	default:
		return 0
	}
}

// Validate reports every parameter that makes the specification unusable.
func (s *Spec) Validate() error {
	var errs []error

	mandatory := []struct {
		name  string
		value int64
	}{
		{"RAS", s.Timing.RAS},
		{"RP", s.Timing.RP},
		{"RCD", s.Timing.RCD},
		{"RFC", s.Timing.RFC},
		{"XP", s.Timing.XP},
		{"CKESR", s.Timing.CKESR},
		{"dataRate", s.DataRate},
		{"burstLength", s.BurstLength},
	}
	for _, p := range mandatory {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", p.name))
		}
	}

	if s.Timing.RFC < s.Timing.RP {
		errs = append(errs, errors.New("RFC must not be shorter than RP"))
	}

	if s.ClockMHz <= 0 {
		errs = append(errs, errors.New("clockMHz must be positive"))
	}

	if s.Ranks <= 0 || s.Banks <= 0 || s.BankGroups <= 0 {
		errs = append(errs, errors.New("ranks, bankGroups and banks must be positive"))
	} else if s.Banks%s.BankGroups != 0 {
		errs = append(errs, fmt.Errorf(
			"%d banks cannot be split into %d bank groups",
			s.Banks, s.BankGroups))
	}

	if len(s.Domains) == 0 {
		errs = append(errs, errors.New("at least one voltage domain is required"))
	}

	for i, d := range s.Domains {
		if d.Voltage <= 0 {
			errs = append(errs, fmt.Errorf("domain %d has no voltage", i))
		}
	}

	return errors.Join(errs...)
}
