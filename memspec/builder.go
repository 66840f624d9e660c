package memspec

import (
	"log"
)

// Builder can build memory specifications.
type Builder struct {
	spec Spec
}

// MakeBuilder creates a builder with default configuration, a dual-rank
// DDR3-1600 device.
func MakeBuilder() Builder {
	return Builder{spec: ddr3Preset()}
}

// WithPreset starts from the representative device of a protocol. It
// replaces every parameter set so far.
func (b Builder) WithPreset(p Protocol) Builder {
	b.spec = Preset(p)
	return b
}

// WithSpec starts from an existing specification.
func (b Builder) WithSpec(s Spec) Builder {
	b.spec = s
	b.spec.Domains = append([]Domain(nil), s.Domains...)

	return b
}

// WithFreq sets the command clock frequency.
func (b Builder) WithFreq(f Freq) Builder {
	b.spec.ClockMHz = float64(f / MHz)
	return b
}

// WithNumRank sets the number of ranks.
func (b Builder) WithNumRank(n int) Builder {
	b.spec.Ranks = n
	return b
}

// WithNumBankGroup sets the number of bank groups in each rank.
func (b Builder) WithNumBankGroup(n int) Builder {
	b.spec.BankGroups = n
	return b
}

// WithNumBank sets the number of banks in each rank.
func (b Builder) WithNumBank(n int) Builder {
	b.spec.Banks = n
	return b
}

// WithBurstLength sets the burst length.
func (b Builder) WithBurstLength(n int64) Builder {
	b.spec.BurstLength = n
	return b
}

// WithDataRate sets the number of data beats per clock cycle.
func (b Builder) WithDataRate(n int64) Builder {
	b.spec.DataRate = n
	return b
}

// WithTiming replaces all the timing parameters.
func (b Builder) WithTiming(t Timing) Builder {
	b.spec.Timing = t
	return b
}

// WithTRAS sets the activate-to-precharge time in cycles.
func (b Builder) WithTRAS(cycle int64) Builder {
	b.spec.Timing.RAS = cycle
	return b
}

// WithTRP sets the precharge time in cycles.
func (b Builder) WithTRP(cycle int64) Builder {
	b.spec.Timing.RP = cycle
	return b
}

// WithTRCD sets the activate-to-access time in cycles.
func (b Builder) WithTRCD(cycle int64) Builder {
	b.spec.Timing.RCD = cycle
	return b
}

// WithTRFC sets the all-bank refresh time in cycles.
func (b Builder) WithTRFC(cycle int64) Builder {
	b.spec.Timing.RFC = cycle
	return b
}

// WithTXP sets the fast power-down exit time in cycles.
func (b Builder) WithTXP(cycle int64) Builder {
	b.spec.Timing.XP = cycle
	return b
}

// WithTXPDLL sets the slow power-down exit time in cycles.
func (b Builder) WithTXPDLL(cycle int64) Builder {
	b.spec.Timing.XPDLL = cycle
	return b
}

// WithTCKESR sets the minimum self-refresh residency in cycles.
func (b Builder) WithTCKESR(cycle int64) Builder {
	b.spec.Timing.CKESR = cycle
	return b
}

// WithTXSDLL sets the self-refresh exit time with DLL relock in cycles.
func (b Builder) WithTXSDLL(cycle int64) Builder {
	b.spec.Timing.XSDLL = cycle
	return b
}

// WithDomains sets the supply rails and their currents.
func (b Builder) WithDomains(domains ...Domain) Builder {
	b.spec.Domains = append([]Domain(nil), domains...)
	return b
}

// Build creates the specification. It panics if the parameters do not
// describe a usable device.
func (b Builder) Build(name string) *Spec {
	s := b.spec
	s.Name = name
	s.Domains = append([]Domain(nil), b.spec.Domains...)

	if err := s.Validate(); err != nil {
		log.Panicf("invalid memory specification %q: %v", name, err)
	}

	return &s
}
