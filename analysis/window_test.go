package analysis

import (
	"math/rand"
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/drampower/command"
)

var traceKinds = []command.Kind{
	command.ACT, command.ACT, command.ACT,
	command.RD, command.RD, command.WR, command.WR,
	command.RDA, command.WRA,
	command.PRE, command.PRE, command.PREA,
	command.REF, command.REFB, command.REFSB, command.REFP2B,
	command.PDEA, command.PDEAS, command.PDEP, command.PDEPS,
	command.PDXA, command.PDXP,
	command.SREFEN, command.SREFEX,
	command.DSMEN, command.DSMEX,
}

// randomTrace generates a command stream with increasing timestamps. Gaps
// after refreshes, self-refresh exits, and auto-precharge accesses are long
// enough for the credited cycles or the implied precharge to have passed
// before the next command.
func randomTrace(rng *rand.Rand, n int) []command.Command {
	cmds := make([]command.Command, 0, n)
	t := int64(rng.Intn(10))

	for i := 0; i < n; i++ {
		kind := traceKinds[rng.Intn(len(traceKinds))]
		cmds = append(cmds, command.New(t, kind, 0, rng.Intn(8)))

		gap := int64(1 + rng.Intn(20))
		if kind.IsRefresh() || kind.IsAutoPrecharge() || kind == command.SREFEX {
			gap += 40
		}

		t += gap
	}

	return cmds
}

// evaluateInWindows cuts the trace into batches at random points and returns
// the running totals. A boundary falls anywhere between the previous boundary
// and the first command of the next batch, so the tail of a batch may wait
// in the carry-over queue for a later window.
func evaluateInWindows(
	rng *rand.Rand,
	cmds []command.Command,
	end int64,
) Snapshot {
	e := MakeBuilder().WithSpec(testSpec()).Build("split")

	var boundary int64

	start := 0
	for i := 1; i < len(cmds); i++ {
		if rng.Intn(3) != 0 {
			continue
		}

		lo := boundary
		if rng.Intn(2) == 0 {
			lo = max(lo, cmds[i-1].Time)
		}

		boundary = lo + rng.Int63n(cmds[i].Time-lo)

		_, err := e.EvaluateWindow(cmds[start:i], boundary, false)
		Expect(err).NotTo(HaveOccurred())

		start = i
	}

	_, err := e.EvaluateWindow(cmds[start:], end, true)
	Expect(err).NotTo(HaveOccurred())
	Expect(e.Pending()).To(BeZero())

	return e.RunningTotals()
}

func rankCycles(s RankStats) int64 {
	return s.ActiveCycles + s.PrechargeCycles + s.PowerDownCycles() +
		s.SelfRefreshResidency() + s.DeepSleepCycles
}

func cycleCounters(v any) []int64 {
	var out []int64

	rv := reflect.ValueOf(v)
	for i := 0; i < rv.NumField(); i++ {
		if rv.Field(i).Kind() == reflect.Int64 {
			out = append(out, rv.Field(i).Int())
		}
	}

	return out
}

var _ = Describe("Windows", func() {
	It("should sum up to the result of a single window", func() {
		for seed := int64(1); seed <= 200; seed++ {
			rng := rand.New(rand.NewSource(seed))
			cmds := randomTrace(rng, 200)
			end := cmds[len(cmds)-1].Time + 100

			e := MakeBuilder().WithSpec(testSpec()).Build("whole")
			whole, err := e.EvaluateWindow(cmds, end, true)
			Expect(err).NotTo(HaveOccurred())

			split := evaluateInWindows(rng, cmds, end)

			Expect(split.Window).To(Equal(whole.Window), "seed %d", seed)
			Expect(split.Ranks).To(Equal(whole.Ranks), "seed %d", seed)
			Expect(warningKinds(split.Warnings)).To(
				Equal(warningKinds(whole.Warnings)), "seed %d", seed)
		}
	})

	It("should account every cycle of every bank exactly once", func() {
		for seed := int64(1); seed <= 30; seed++ {
			rng := rand.New(rand.NewSource(seed))
			cmds := randomTrace(rng, 200)
			end := cmds[len(cmds)-1].Time + 100

			e := MakeBuilder().WithSpec(testSpec()).Build("conservation")
			s, err := e.EvaluateWindow(cmds, end, true)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Window.End).To(Equal(end))

			rs := s.Ranks[0]
			Expect(rankCycles(rs)).To(Equal(end), "seed %d", seed)
			for b := range rs.Banks {
				Expect(rs.BankCycles(b)).To(Equal(end), "seed %d bank %d", seed, b)
			}
		}
	})

	It("should never produce negative counters", func() {
		for seed := int64(1); seed <= 30; seed++ {
			rng := rand.New(rand.NewSource(seed))
			cmds := randomTrace(rng, 100)
			e := MakeBuilder().WithSpec(testSpec()).Build("non-negative")

			for i := 0; i < len(cmds); i += 10 {
				last := min(i+10, len(cmds))
				s, err := e.EvaluateWindow(
					cmds[i:last], cmds[last-1].Time, last == len(cmds))
				Expect(err).NotTo(HaveOccurred())

				for _, rs := range s.Ranks {
					for _, v := range cycleCounters(rs) {
						Expect(v).To(BeNumerically(">=", 0), "seed %d", seed)
					}

					for _, bs := range rs.Banks {
						for _, v := range cycleCounters(bs) {
							Expect(v).To(BeNumerically(">=", 0), "seed %d", seed)
						}
					}
				}
			}
		}
	})

	It("should report an empty window at the previous boundary", func() {
		e := MakeBuilder().WithSpec(testSpec()).Build("twice")

		_, err := e.EvaluateWindow([]command.Command{
			cmd(0, command.ACT, 0),
			cmd(10, command.RD, 0),
		}, 30, false)
		Expect(err).NotTo(HaveOccurred())

		before := e.RunningTotals()

		s, err := e.EvaluateWindow(nil, 30, false)
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Window).To(Equal(Window{Start: 30, End: 30}))
		Expect(s.Ranks[0].ActiveCycles).To(Equal(int64(0)))
		Expect(s.Ranks[0].Banks[0].ActiveCycles).To(Equal(int64(0)))
		Expect(s.Ranks[0].Banks[3].PrechargeCycles).To(Equal(int64(0)))
		Expect(s.Ranks[0].IdleActiveCycles).To(Equal(int64(0)))
		Expect(e.RunningTotals().Ranks).To(Equal(before.Ranks))
	})
})
