package analysis

import (
	"fmt"

	"github.com/sarchlab/drampower/command"
)

// A rank owns the banks of one rank and the power mode they share. All the
// mutable state of a rank is touched only by the commands routed to it.
type rank struct {
	index    int
	spec     TimingSpec
	banks    []*bank
	expander *expander

	mode        PowerMode
	savedStates []BankState

	// entryCycle is the cycle the current power mode was entered.
	entryCycle int64

	// powerCursor is the cycle up to which the current power mode has been
	// credited.
	powerCursor int64
	srefCredit  selfRefreshCredit

	accountedUntil int64
	idle           idleTracker

	stats    RankStats
	warnings []Warning
}

func newRank(index int, spec TimingSpec) *rank {
	r := &rank{
		index:    index,
		spec:     spec,
		expander: newExpander(spec),
	}

	r.banks = make([]*bank, spec.NumBanks())
	for i := range r.banks {
		r.banks[i] = &bank{index: i}
	}

	return r
}

func (r *rank) handle(c command.Command) {
	if r.poweredDown() && c.Kind.IsBankCommand() {
		r.warn(c, IssuedDuringPowerDown, fmt.Sprintf("issued during %s", r.mode))
	}

	switch c.Kind {
	case command.ACT:
		r.activate(c)
	case command.RD, command.WR, command.RDA, command.WRA:
		r.access(c)
	case command.PRE:
		r.precharge(c)
	case command.PREA:
		r.prechargeAll(c)
	case command.REF, command.REFA:
		r.refresh(c)
	case command.REFB, command.REFSB, command.REFP2B:
		r.refreshBanks(c)
	case command.PDEA, command.PDEAS, command.PDEP, command.PDEPS:
		r.enterPowerDown(c)
	case command.PDXA, command.PDXP:
		r.exitPowerDown(c)
	case command.SREFEN:
		r.enterSelfRefresh(c)
	case command.SREFEX:
		r.exitSelfRefresh(c)
	case command.DSMEN:
		r.enterDeepSleep(c)
	case command.DSMEX:
		r.exitDeepSleep(c)
	case command.NOP, command.END:
		r.flush(c.Time)
	}
}

func (r *rank) poweredDown() bool {
	return r.mode != NotInPowerDown
}

// stateOf returns the state the bank will have once the rank is powered up.
func (r *rank) stateOf(b *bank) BankState {
	if r.poweredDown() {
		return r.savedStates[b.index]
	}

	return b.state
}

func (r *rank) setState(b *bank, s BankState) {
	if r.poweredDown() {
		r.savedStates[b.index] = s
		return
	}

	b.state = s
}

func (r *rank) numActive() int {
	n := 0
	for _, b := range r.banks {
		if b.state == BankActive {
			n++
		}
	}

	return n
}

func (r *rank) activeBanks() []*bank {
	var active []*bank
	for _, b := range r.banks {
		if r.stateOf(b) == BankActive {
			active = append(active, b)
		}
	}

	return active
}

func (r *rank) bankStates() []BankState {
	states := make([]BankState, len(r.banks))
	for i, b := range r.banks {
		states[i] = b.state
	}

	return states
}

// elapse advances a cursor to now and returns the cycles passed. A cursor in
// the future yields 0 and, for a real command, a warning.
func (r *rank) elapse(
	cursor *int64,
	now int64,
	c *command.Command,
	what string,
) int64 {
	if now < *cursor {
		if c != nil {
			r.warn(*c, NegativeDuration, fmt.Sprintf(
				"%s is %d cycles in the future", what, *cursor-now))
		}

		return 0
	}

	d := now - *cursor
	*cursor = now

	return d
}

// flushRank attributes the time since the last rank update to the active or
// the precharge counter, depending on whether any bank is open.
func (r *rank) flushRank(now int64, c *command.Command) {
	d := r.elapse(&r.accountedUntil, now, c, "rank accounting")

	if r.numActive() > 0 {
		r.stats.ActiveCycles += d
		r.stats.IdleActiveCycles += r.idle.activeIdle(now)

		return
	}

	r.stats.PrechargeCycles += d
	r.stats.IdlePrechargeCycles += r.idle.prechargeIdle(now)
}

// flush brings every open-ended accumulation up to now without changing any
// state.
func (r *rank) flush(now int64) {
	switch r.mode {
	case NotInPowerDown:
		r.flushRank(now, nil)
		for _, b := range r.banks {
			r.flushBank(b, now, nil)
		}
	case SelfRefresh:
		r.flushSelfRefresh(now, nil)
	default:
		r.flushPowerMode(now, nil)
	}
}

func (r *rank) enterPowerDown(c command.Command) {
	if r.poweredDown() {
		r.warn(c, IllegalStateTransition,
			fmt.Sprintf("power-down entry while in %s", r.mode))

		return
	}

	var mode PowerMode

	switch c.Kind {
	case command.PDEA:
		mode = PowerDownActiveFast
		r.stats.ActivePowerDownsFast++
	case command.PDEAS:
		mode = PowerDownActiveSlow
		r.stats.ActivePowerDownsSlow++
	case command.PDEP:
		mode = PowerDownPrechargeFast
		r.stats.PrechargePowerDownsFast++
	default:
		mode = PowerDownPrechargeSlow
		r.stats.PrechargePowerDownsSlow++
	}

	anyActive := r.numActive() > 0
	if mode.isActivePowerDown() && !anyActive {
		r.warn(c, IllegalStateTransition,
			"all banks are precharged, incorrect use of active power-down")
	}

	if !mode.isActivePowerDown() && anyActive {
		r.warn(c, IllegalStateTransition,
			"banks are active, incorrect use of precharged power-down")
	}

	r.suspend(c, r.bankStates())
	r.mode = mode
}

func (r *rank) exitPowerDown(c command.Command) {
	if !r.mode.IsPowerDown() {
		r.warn(c, IllegalStateTransition,
			fmt.Sprintf("power-up while in %s", r.mode))

		return
	}

	if (c.Kind == command.PDXA) != r.mode.isActivePowerDown() {
		r.warn(c, IllegalStateTransition,
			fmt.Sprintf("%s does not match %s", c.Kind, r.mode))
	}

	r.flushPowerMode(c.Time, &c)

	cost := r.spec.XP()
	if r.mode.isSlowExit() {
		cost = r.spec.XPDLL()
	}

	if r.mode.isActivePowerDown() {
		r.stats.ActivePowerUpCycles += cost
	} else {
		r.stats.PrechargePowerUpCycles += cost
	}

	r.resume(c.Time, c.Time+cost)
}

func (r *rank) enterDeepSleep(c command.Command) {
	if r.poweredDown() {
		r.warn(c, IllegalStateTransition,
			fmt.Sprintf("deep-sleep entry while in %s", r.mode))

		return
	}

	if r.numActive() > 0 {
		r.warn(c, IllegalStateTransition,
			"banks are active, deep sleep requires all banks precharged")
	}

	r.stats.DeepSleeps++
	r.suspend(c, make([]BankState, len(r.banks)))
	r.mode = DeepSleep
}

func (r *rank) exitDeepSleep(c command.Command) {
	if r.mode != DeepSleep {
		r.warn(c, IllegalStateTransition,
			fmt.Sprintf("deep-sleep exit while in %s", r.mode))

		return
	}

	r.flushPowerMode(c.Time, &c)
	r.resume(c.Time, c.Time)
}

// flushPowerMode credits the time spent in a power-down or deep-sleep mode.
func (r *rank) flushPowerMode(now int64, c *command.Command) {
	d := r.elapse(&r.powerCursor, now, c, "power-mode entry")

	switch r.mode {
	case PowerDownActiveFast:
		r.stats.ActivePowerDownFastCycles += d
	case PowerDownActiveSlow:
		r.stats.ActivePowerDownSlowCycles += d
	case PowerDownPrechargeFast:
		r.stats.PrechargePowerDownFastCycles += d
	case PowerDownPrechargeSlow:
		r.stats.PrechargePowerDownSlowCycles += d
	case DeepSleep:
		r.stats.DeepSleepCycles += d
	}
}

// suspend closes the accounting of the banks before a power mode is entered.
// saved is the bank state to return to on exit. While suspended, all banks
// are logically precharged.
func (r *rank) suspend(c command.Command, saved []BankState) {
	r.flushRank(c.Time, &c)
	for _, b := range r.banks {
		r.flushBank(b, c.Time, &c)
		b.state = BankPrecharged
	}

	r.savedStates = saved
	r.entryCycle = c.Time
	r.powerCursor = c.Time
}

// resume restores the saved bank states. Accounting restarts at anchor and
// the banks are considered idle from idleFrom on.
func (r *rank) resume(anchor, idleFrom int64) {
	for i, b := range r.banks {
		b.state = r.savedStates[i]
		b.accountedUntil = max(b.accountedUntil, anchor)
		b.idle.occupy(idleFrom)
		b.idle.closeAt(idleFrom)
	}

	r.mode = NotInPowerDown
	r.savedStates = nil
	r.accountedUntil = max(r.accountedUntil, anchor)
	r.idle.occupy(idleFrom)
	r.idle.closeAt(idleFrom)
}

func (r *rank) warn(c command.Command, kind WarningKind, msg string) {
	r.warnBank(c, c.Location.Bank, kind, msg)
}

func (r *rank) warnBank(
	c command.Command,
	bank int,
	kind WarningKind,
	msg string,
) {
	r.warnings = append(r.warnings, Warning{
		Time:    c.Time,
		Kind:    kind,
		Rank:    r.index,
		Bank:    bank,
		Command: c.Kind,
		Message: msg,
	})
}
