// Package report formats analysis results for humans.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/drampower/analysis"
	"github.com/sarchlab/drampower/energy"
)

// Write prints the counters and the energy of every rank, followed by the
// totals over all ranks.
func Write(w io.Writer, s analysis.Snapshot, e energy.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Window\t[%d, %d)\t%d cycles\n",
		s.Window.Start, s.Window.End, s.Window.Cycles())

	for i, rs := range s.Ranks {
		fmt.Fprintf(tw, "\nRank %d\t\t\n", rs.Rank)
		writeCounters(tw, rs)

		if i < len(e.Ranks) {
			writeEnergy(tw, e.Ranks[i])
		}
	}

	fmt.Fprintf(tw, "\nTotal\t\t\n")
	writeEnergy(tw, e.Total)
	fmt.Fprintf(tw, "  Average power\t%.3f\tmW\n", e.AveragePower)
	fmt.Fprintf(tw, "  Warnings\t%d\t\n", len(s.Warnings))

	return tw.Flush()
}

// WriteWarnings prints one line per warning.
func WriteWarnings(w io.Writer, warnings []analysis.Warning) error {
	for _, warning := range warnings {
		if _, err := fmt.Fprintln(w, warning); err != nil {
			return err
		}
	}

	return nil
}

func writeCounters(w io.Writer, rs analysis.RankStats) {
	b := rs.BankTotals()

	rows := []struct {
		name  string
		value int64
	}{
		{"ACT commands", b.Activates},
		{"PRE commands", b.Precharges},
		{"PREA commands", rs.PrechargeAlls},
		{"RD commands", b.Reads},
		{"WR commands", b.Writes},
		{"REF commands", rs.Refreshes},
		{"Bank refreshes", b.Refreshes},
		{"Active power-downs", rs.ActivePowerDownsFast + rs.ActivePowerDownsSlow},
		{"Precharged power-downs", rs.PrechargePowerDownsFast + rs.PrechargePowerDownsSlow},
		{"Self-refreshes", rs.SelfRefreshes},
		{"Deep sleeps", rs.DeepSleeps},
		{"Active cycles", rs.ActiveCycles},
		{"Precharged cycles", rs.PrechargeCycles},
		{"Idle active cycles", rs.IdleActiveCycles},
		{"Idle precharged cycles", rs.IdlePrechargeCycles},
		{"Power-down cycles", rs.PowerDownCycles()},
		{"Power-up cycles", rs.ActivePowerUpCycles + rs.PrechargePowerUpCycles},
		{"Self-refresh cycles", rs.SelfRefreshResidency()},
		{"Self-refresh power-up cycles", rs.SelfRefreshPowerUpCycles},
		{"Deep-sleep cycles", rs.DeepSleepCycles},
	}

	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%d\t\n", r.name, r.value)
	}
}

func writeEnergy(w io.Writer, e energy.Energy) {
	rows := []struct {
		name  string
		value float64
	}{
		{"ACT energy", e.Activate},
		{"PRE energy", e.Precharge},
		{"RD energy", e.Read},
		{"WR energy", e.Write},
		{"REF energy", e.Refresh + e.BankRefresh},
		{"Active background energy", e.ActiveBackground},
		{"Precharged background energy", e.PrechargeBackground},
		{"Power-down energy", e.ActivePowerDown + e.PrechargePowerDown},
		{"Power-up energy", e.PowerUp + e.SelfRefreshPowerUp},
		{"Self-refresh energy", e.SelfRefresh},
		{"Deep-sleep energy", e.DeepSleep},
		{"Total energy", e.Total()},
	}

	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%.3f\tpJ\n", r.name, r.value)
	}
}
