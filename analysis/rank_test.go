package analysis

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/drampower/command"
	"github.com/sarchlab/drampower/memspec"
)

var _ = Describe("Rank", func() {
	var r *rank

	BeforeEach(func() {
		r = newRank(0, testSpec())
	})

	run := func(cmds ...command.Command) {
		for _, c := range cmds {
			r.handle(c)
		}
	}

	Context("when activating and precharging", func() {
		It("should count active and precharge cycles", func() {
			run(cmd(0, command.ACT, 0), cmd(15, command.PRE, 0))

			s := r.closeWindow(15)

			Expect(s.Banks[0].Activates).To(Equal(int64(1)))
			Expect(s.Banks[0].Precharges).To(Equal(int64(1)))
			Expect(s.Banks[0].ActiveCycles).To(Equal(int64(15)))
			Expect(s.Banks[0].PrechargeCycles).To(Equal(int64(0)))
			for i := 1; i < 8; i++ {
				Expect(s.Banks[i].ActiveCycles).To(Equal(int64(0)))
				Expect(s.Banks[i].PrechargeCycles).To(Equal(int64(15)))
			}

			Expect(s.ActiveCycles).To(Equal(int64(15)))
			Expect(s.PrechargeCycles).To(Equal(int64(0)))
			Expect(s.IdleActiveCycles).To(Equal(int64(11)))
			Expect(r.warnings).To(BeEmpty())
		})

		It("should warn on activating an active bank", func() {
			run(cmd(0, command.ACT, 0), cmd(5, command.ACT, 0))

			s := r.closeWindow(10)

			Expect(s.Banks[0].Activates).To(Equal(int64(1)))
			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IllegalStateTransition}))
		})

		It("should warn on precharging a precharged bank", func() {
			run(cmd(5, command.PRE, 2))

			s := r.closeWindow(10)

			Expect(s.Banks[2].Precharges).To(Equal(int64(0)))
			Expect(s.Banks[2].PrechargeCycles).To(Equal(int64(10)))
			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IllegalStateTransition}))
		})

		It("should count a read to a precharged bank with a warning", func() {
			run(cmd(5, command.RD, 1))

			s := r.closeWindow(10)

			Expect(s.Banks[1].Reads).To(Equal(int64(1)))
			Expect(r.warnings).To(HaveLen(1))
			Expect(r.warnings[0].Bank).To(Equal(1))
		})

		It("should keep the rank active until the last bank closes", func() {
			run(
				cmd(0, command.ACT, 0),
				cmd(2, command.ACT, 1),
				cmd(20, command.PRE, 0),
				cmd(30, command.PRE, 1),
			)

			s := r.closeWindow(40)

			Expect(s.ActiveCycles).To(Equal(int64(30)))
			Expect(s.PrechargeCycles).To(Equal(int64(10)))
			Expect(s.Banks[1].ActiveCycles).To(Equal(int64(28)))
			Expect(s.Banks[1].PrechargeCycles).To(Equal(int64(12)))
		})
	})

	Context("when precharging all banks", func() {
		It("should close every active bank", func() {
			run(
				cmd(0, command.ACT, 0),
				cmd(2, command.ACT, 1),
				cmd(20, command.PREA, 0),
			)

			s := r.closeWindow(20)

			Expect(s.PrechargeAlls).To(Equal(int64(1)))
			Expect(s.Banks[0].Precharges).To(Equal(int64(1)))
			Expect(s.Banks[1].Precharges).To(Equal(int64(1)))
			Expect(s.Banks[2].Precharges).To(Equal(int64(0)))
			Expect(s.Banks[0].ActiveCycles).To(Equal(int64(20)))
			Expect(s.Banks[1].ActiveCycles).To(Equal(int64(18)))
			Expect(s.ActiveCycles).To(Equal(int64(20)))
			Expect(s.Banks[0].State).To(Equal(BankPrecharged))
		})

		It("should warn when no bank is active", func() {
			run(cmd(20, command.PREA, 0))

			s := r.closeWindow(20)

			Expect(s.PrechargeAlls).To(Equal(int64(0)))
			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IllegalStateTransition}))
		})
	})

	Context("when refreshing", func() {
		It("should credit the active part of an all-bank refresh", func() {
			run(cmd(0, command.REF, 0))

			s := r.closeWindow(100)

			Expect(s.Refreshes).To(Equal(int64(1)))
			Expect(s.ActiveCycles).To(Equal(int64(20)))
			Expect(s.PrechargeCycles).To(Equal(int64(80)))
			for _, b := range s.Banks {
				Expect(b.ActiveCycles).To(Equal(int64(20)))
				Expect(b.PrechargeCycles).To(Equal(int64(80)))
			}
		})

		It("should close open banks with a warning", func() {
			run(cmd(0, command.ACT, 0), cmd(10, command.REF, 0))

			s := r.closeWindow(50)

			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IllegalStateTransition}))
			Expect(s.Banks[0].ActiveCycles).To(Equal(int64(30)))
			Expect(s.Banks[0].State).To(Equal(BankPrecharged))
			Expect(s.ActiveCycles).To(Equal(int64(30)))
			Expect(s.PrechargeCycles).To(Equal(int64(20)))
		})

		It("should refresh a single bank", func() {
			run(cmd(0, command.REFB, 3))

			s := r.closeWindow(50)

			Expect(s.Refreshes).To(Equal(int64(0)))
			Expect(s.Banks[3].Refreshes).To(Equal(int64(1)))
			Expect(s.Banks[3].ActiveCycles).To(Equal(int64(20)))
			Expect(s.Banks[3].PrechargeCycles).To(Equal(int64(30)))
			Expect(s.Banks[2].PrechargeCycles).To(Equal(int64(50)))
			Expect(s.PrechargeCycles).To(Equal(int64(50)))
		})

		It("should skip an active bank in a bank refresh", func() {
			run(cmd(0, command.ACT, 3), cmd(10, command.REFB, 3))

			s := r.closeWindow(20)

			Expect(s.Banks[3].Refreshes).To(Equal(int64(0)))
			Expect(s.Banks[3].ActiveCycles).To(Equal(int64(20)))
			Expect(r.warnings).To(HaveLen(1))
			Expect(r.warnings[0].Bank).To(Equal(3))
		})

		It("should pick the targets of group and pair refreshes", func() {
			grouped := newRank(0, memspec.MakeBuilder().
				WithNumRank(1).
				WithNumBankGroup(4).
				WithNumBank(16).
				Build("grouped"))

			Expect(grouped.refreshTargets(cmd(0, command.REFSB, 5))).
				To(Equal([]int{1, 5, 9, 13}))
			Expect(r.refreshTargets(cmd(0, command.REFP2B, 5))).
				To(Equal([]int{5, 1}))
			Expect(r.refreshTargets(cmd(0, command.REFB, 5))).
				To(Equal([]int{5}))
		})
	})

	Context("when tracking idle cycles", func() {
		It("should count the gaps between operations", func() {
			run(
				cmd(0, command.ACT, 0),
				cmd(10, command.RD, 0),
				cmd(40, command.PRE, 0),
			)

			s := r.closeWindow(60)

			Expect(s.IdleActiveCycles).To(Equal(int64(21)))
			Expect(s.IdlePrechargeCycles).To(Equal(int64(10)))
			Expect(s.Banks[0].IdleActiveCycles).To(Equal(int64(21)))
			Expect(s.Banks[0].IdlePrechargeCycles).To(Equal(int64(10)))
			Expect(s.Banks[0].Reads).To(Equal(int64(1)))
		})

		It("should count the gap before activating a second bank", func() {
			run(cmd(0, command.ACT, 0), cmd(10, command.ACT, 1))
			whole := r.closeWindow(118)

			r = newRank(0, testSpec())
			run(cmd(0, command.ACT, 0))
			first := r.closeWindow(6)
			r.openWindow()
			run(cmd(10, command.ACT, 1))
			second := r.closeWindow(118)

			Expect(whole.IdleActiveCycles).To(Equal(int64(110)))
			Expect(first.IdleActiveCycles).To(Equal(int64(2)))
			Expect(first.IdleActiveCycles + second.IdleActiveCycles).To(
				Equal(whole.IdleActiveCycles))
		})
	})

	Context("when powering down", func() {
		It("should count active power-down and the power-up", func() {
			run(
				cmd(0, command.ACT, 0),
				cmd(10, command.PDEA, 0),
				cmd(30, command.PDXA, 0),
			)

			s := r.closeWindow(30)

			Expect(s.ActivePowerDownsFast).To(Equal(int64(1)))
			Expect(s.ActivePowerDownFastCycles).To(Equal(int64(20)))
			Expect(s.ActivePowerUpCycles).To(Equal(int64(3)))
			Expect(s.Banks[0].ActiveCycles).To(Equal(int64(10)))
			Expect(s.Banks[0].State).To(Equal(BankActive))
			Expect(s.ActiveCycles).To(Equal(int64(10)))
			Expect(s.PowerMode).To(Equal(NotInPowerDown))
			Expect(r.warnings).To(BeEmpty())

			r.openWindow()
			s = r.closeWindow(50)

			Expect(s.Banks[0].ActiveCycles).To(Equal(int64(20)))
		})

		It("should charge tXPDLL for a slow exit", func() {
			run(cmd(0, command.PDEPS, 0), cmd(20, command.PDXP, 0))

			s := r.closeWindow(20)

			Expect(s.PrechargePowerDownsSlow).To(Equal(int64(1)))
			Expect(s.PrechargePowerDownSlowCycles).To(Equal(int64(20)))
			Expect(s.PrechargePowerUpCycles).To(Equal(int64(6)))
		})

		It("should report the mode while powered down", func() {
			run(cmd(0, command.PDEP, 0))

			s := r.closeWindow(25)

			Expect(s.PowerMode).To(Equal(PowerDownPrechargeFast))
			Expect(s.PrechargePowerDownFastCycles).To(Equal(int64(25)))
			Expect(s.BankCycles(4)).To(Equal(int64(25)))
		})

		It("should warn on precharge power-down with open banks", func() {
			run(cmd(0, command.ACT, 0), cmd(10, command.PDEP, 0))

			s := r.closeWindow(20)

			Expect(s.PowerMode).To(Equal(PowerDownPrechargeFast))
			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IllegalStateTransition}))
		})

		It("should warn on active power-down with all banks closed", func() {
			run(cmd(10, command.PDEA, 0))

			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IllegalStateTransition}))
			Expect(r.mode).To(Equal(PowerDownActiveFast))
		})

		It("should ignore a second power-down entry", func() {
			run(cmd(0, command.PDEP, 0), cmd(10, command.PDEA, 0))

			s := r.closeWindow(20)

			Expect(s.PrechargePowerDownsFast).To(Equal(int64(1)))
			Expect(s.ActivePowerDownsFast).To(Equal(int64(0)))
			Expect(s.PrechargePowerDownFastCycles).To(Equal(int64(20)))
			Expect(r.warnings).To(HaveLen(1))
		})

		It("should ignore a power-up outside of power-down", func() {
			run(cmd(10, command.PDXA, 0))

			s := r.closeWindow(20)

			Expect(s.ActivePowerUpCycles).To(Equal(int64(0)))
			Expect(s.PrechargeCycles).To(Equal(int64(20)))
			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IllegalStateTransition}))
		})

		It("should exit the actual mode on a mismatched power-up", func() {
			run(
				cmd(0, command.ACT, 0),
				cmd(10, command.PDEA, 0),
				cmd(20, command.PDXP, 0),
			)

			s := r.closeWindow(20)

			Expect(s.ActivePowerUpCycles).To(Equal(int64(3)))
			Expect(s.PrechargePowerUpCycles).To(Equal(int64(0)))
			Expect(s.PowerMode).To(Equal(NotInPowerDown))
			Expect(r.warnings).To(HaveLen(1))
		})

		It("should apply bank commands issued during power-down", func() {
			run(
				cmd(0, command.PDEP, 0),
				cmd(5, command.ACT, 2),
				cmd(20, command.PDXP, 0),
			)

			s := r.closeWindow(30)

			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IssuedDuringPowerDown}))
			Expect(s.Banks[2].Activates).To(Equal(int64(1)))
			Expect(s.Banks[2].State).To(Equal(BankActive))
			Expect(s.Banks[2].ActiveCycles).To(Equal(int64(10)))
			Expect(s.Banks[2].PrechargeCycles).To(Equal(int64(0)))
			Expect(s.BankCycles(2)).To(Equal(int64(30)))
		})
	})

	Context("when in deep sleep", func() {
		It("should count deep-sleep cycles", func() {
			run(cmd(0, command.DSMEN, 0), cmd(40, command.DSMEX, 0))

			s := r.closeWindow(50)

			Expect(s.DeepSleeps).To(Equal(int64(1)))
			Expect(s.DeepSleepCycles).To(Equal(int64(40)))
			Expect(s.Banks[0].PrechargeCycles).To(Equal(int64(10)))
			Expect(s.BankCycles(0)).To(Equal(int64(50)))
		})

		It("should warn on exit outside of deep sleep", func() {
			run(cmd(10, command.DSMEX, 0))

			Expect(warningKinds(r.warnings)).To(
				Equal([]WarningKind{IllegalStateTransition}))
		})
	})

	It("should warn on commands in the past of the accounting", func() {
		run(cmd(0, command.REF, 0), cmd(5, command.ACT, 0))

		Expect(warningKinds(r.warnings)).To(ContainElement(NegativeDuration))
	})

	It("should return the same counters when closed twice", func() {
		run(cmd(0, command.ACT, 0), cmd(10, command.RD, 0))

		first := r.closeWindow(30)
		second := r.closeWindow(30)

		Expect(second).To(Equal(first))
	})
})
