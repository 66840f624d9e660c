package energy

import (
	"log"

	"github.com/sarchlab/drampower/analysis"
	"github.com/sarchlab/drampower/memspec"
)

// Calculator computes the energy of analysis results for one device.
type Calculator struct {
	spec *memspec.Spec

	// tCK is the clock period in ns. With currents in mA and voltages in V,
	// current times voltage times tCK is in pJ.
	tCK float64
}

// NewCalculator creates a calculator for the device.
func NewCalculator(spec *memspec.Spec) *Calculator {
	if spec == nil {
		log.Panic("memory specification is required to calculate energy")
	}

	return &Calculator{
		spec: spec,
		tCK:  spec.Freq().PeriodNS(),
	}
}

// Snapshot computes the energy of every rank of a snapshot and the average
// power over its window.
func (c *Calculator) Snapshot(s analysis.Snapshot) Result {
	r := Result{
		Ranks:  make([]Energy, len(s.Ranks)),
		Cycles: s.Window.Cycles(),
	}

	for i, rs := range s.Ranks {
		r.Ranks[i] = c.Rank(rs)
		r.Total = r.Total.Add(r.Ranks[i])
	}

	r.AveragePower = c.AveragePower(r.Total.Total(), r.Cycles)

	return r
}

// Rank computes the energy of one rank, summed over all supply rails.
func (c *Calculator) Rank(s analysis.RankStats) Energy {
	var e Energy
	for _, d := range c.spec.Domains {
		e = e.Add(c.domain(d, s))
	}

	return e
}

// AveragePower returns the average power in mW of spending energy pJ over
// the given number of cycles.
func (c *Calculator) AveragePower(energy float64, cycles int64) float64 {
	if cycles <= 0 {
		return 0
	}

	return energy / (float64(cycles) * c.tCK)
}

func (c *Calculator) domain(d memspec.Domain, s analysis.RankStats) Energy {
	t := c.spec.Timing
	i := d.Currents
	banks := s.BankTotals()

	// cycles converts a current and a number of cycles into energy.
	cycles := func(current float64, n int64) float64 {
		return current * d.Voltage * float64(n) * c.tCK
	}

	burst := c.spec.BurstLength / max(1, c.spec.DataRate)

	preCycles := t.RC - t.RAS
	if preCycles <= 0 {
		preCycles = t.RP
	}

	e := Energy{
		Activate:  cycles(i.IDD0-i.IDD3N, banks.Activates*t.RAS),
		Precharge: cycles(i.IDD0-i.IDD2N, banks.Precharges*preCycles),
		Read:      cycles(i.IDD4R-i.IDD3N, banks.Reads*burst),
		Write:     cycles(i.IDD4W-i.IDD3N, banks.Writes*burst),
		Refresh:   cycles(i.IDD5-i.IDD3N, s.Refreshes*t.RFC),

		ActiveBackground:    cycles(i.IDD3N, s.ActiveCycles),
		PrechargeBackground: cycles(i.IDD2N, s.PrechargeCycles),
		ActivePowerDown: cycles(i.IDD3P1, s.ActivePowerDownFastCycles) +
			cycles(i.IDD3P0, s.ActivePowerDownSlowCycles),
		PrechargePowerDown: cycles(i.IDD2P1, s.PrechargePowerDownFastCycles) +
			cycles(i.IDD2P0, s.PrechargePowerDownSlowCycles),
		PowerUp: cycles(i.IDD3N, s.ActivePowerUpCycles) +
			cycles(i.IDD2N, s.PrechargePowerUpCycles),
		SelfRefreshPowerUp: cycles(i.IDD2N, s.SelfRefreshPowerUpCycles),
		DeepSleep:          cycles(i.IDD6DS, s.DeepSleepCycles),
	}

	e.BankRefresh = c.bankRefresh(d, banks.Refreshes)
	e.SelfRefresh = c.selfRefresh(d, s)

	return e
}

// bankRefresh falls back to a share of the all-bank refresh current when the
// device has no per-bank refresh current.
func (c *Calculator) bankRefresh(d memspec.Domain, n int64) float64 {
	t := c.spec.Timing
	i := d.Currents

	if i.IDD5PB > 0 {
		rfcpb := t.RFCPB
		if rfcpb == 0 {
			rfcpb = t.RFC
		}

		return (i.IDD5PB - i.IDD3N) * d.Voltage * float64(n*rfcpb) * c.tCK
	}

	share := float64(t.RFC) / float64(max(1, c.spec.Banks))

	return (i.IDD5 - i.IDD3N) * d.Voltage * float64(n) * share * c.tCK
}

// selfRefresh charges IDD6 for plain self-refresh. The implicit refresh at
// entry is charged IDD5 on top of the standby current of the state it is
// performed in.
func (c *Calculator) selfRefresh(d memspec.Domain, s analysis.RankStats) float64 {
	i := d.Currents
	e := func(current float64, n int64) float64 {
		return current * d.Voltage * float64(n) * c.tCK
	}

	refresh := s.SelfRefreshRefreshActiveCycles +
		s.SelfRefreshRefreshPrechargeCycles +
		s.SelfRefreshExitActiveCycles +
		s.SelfRefreshExitPrechargeCycles

	return e(i.IDD6, s.SelfRefreshCycles) +
		e(i.IDD5-i.IDD3N, refresh) +
		e(i.IDD3P0, s.SelfRefreshRefreshActiveCycles) +
		e(i.IDD2P0, s.SelfRefreshRefreshPrechargeCycles) +
		e(i.IDD3N, s.SelfRefreshExitActiveCycles) +
		e(i.IDD2N, s.SelfRefreshExitPrechargeCycles)
}
