package analysis

import (
	"log"

	"github.com/sarchlab/drampower/hooking"
)

// Builder can build analysis engines.
type Builder struct {
	spec  TimingSpec
	hooks []hooking.Hook
}

// MakeBuilder creates a builder with default configuration.
func MakeBuilder() Builder {
	return Builder{}
}

// WithSpec sets the timing specification of the device.
func (b Builder) WithSpec(spec TimingSpec) Builder {
	b.spec = spec
	return b
}

// WithHook adds a hook to the engine to build.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(append([]hooking.Hook(nil), b.hooks...), h)
	return b
}

// Build creates an engine.
func (b Builder) Build(name string) *Engine {
	if b.spec == nil {
		log.Panic("timing spec is required to build an analysis engine")
	}

	if b.spec.NumRanks() <= 0 || b.spec.NumBanks() <= 0 {
		log.Panicf("invalid geometry: %d ranks, %d banks",
			b.spec.NumRanks(), b.spec.NumBanks())
	}

	e := &Engine{
		name: name,
		spec: b.spec,
	}

	e.ranks = make([]*rank, b.spec.NumRanks())
	for i := range e.ranks {
		e.ranks[i] = newRank(i, b.spec)
	}

	for _, h := range b.hooks {
		e.AcceptHook(h)
	}

	return e
}
