package memspec

import (
	"log"
	"math"
)

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive clock edges in seconds.
func (f Freq) Period() float64 {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return 1.0 / float64(f)
}

// PeriodNS returns the clock period in nanoseconds.
func (f Freq) PeriodNS() float64 {
	return f.Period() * 1e9
}

// Cycle converts a duration in seconds to the number of cycles.
func (f Freq) Cycle(seconds float64) uint64 {
	return uint64(math.Round(seconds * float64(f)))
}

// Duration returns the number of seconds that n cycles take.
func (f Freq) Duration(n int64) float64 {
	return float64(n) * f.Period()
}
