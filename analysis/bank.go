package analysis

import "github.com/sarchlab/drampower/command"

// A bank holds the array state of one bank together with its counters of the
// current window.
type bank struct {
	index int
	state BankState

	latestActivate  int64
	latestPrecharge int64

	// accountedUntil is the cycle up to which the time of the bank has been
	// attributed to a counter.
	accountedUntil int64

	idle  idleTracker
	stats BankStats
}

func (r *rank) activate(c command.Command) {
	b := r.banks[c.Location.Bank]
	if r.stateOf(b) == BankActive {
		r.warn(c, IllegalStateTransition, "bank is already active")
		return
	}

	b.stats.Activates++
	b.latestActivate = c.Time

	if !r.poweredDown() {
		if r.numActive() == 0 {
			r.flushRank(c.Time, &c)
		} else {
			r.stats.IdleActiveCycles += r.idle.activeIdle(c.Time)
		}

		r.flushBank(b, c.Time, &c)

		busy := c.Time + r.spec.RCD() - 1
		r.idle.occupy(busy)
		b.idle.occupy(busy)
	}

	r.setState(b, BankActive)
}

func (r *rank) access(c command.Command) {
	b := r.banks[c.Location.Bank]
	if r.stateOf(b) != BankActive {
		r.warn(c, IllegalStateTransition, "bank is not active")
	}

	kind := c.Kind.WithoutAutoPrecharge()
	if kind == command.RD {
		b.stats.Reads++
	} else {
		b.stats.Writes++
	}

	if r.poweredDown() {
		return
	}

	busy := c.Time + r.spec.CompletionLatency(kind) - 1

	r.stats.IdleActiveCycles += r.idle.activeIdle(c.Time)
	r.idle.occupy(busy)

	b.stats.IdleActiveCycles += b.idle.activeIdle(c.Time)
	b.idle.occupy(busy)
}

func (r *rank) precharge(c command.Command) {
	b := r.banks[c.Location.Bank]
	if r.stateOf(b) != BankActive {
		r.warn(c, IllegalStateTransition, "bank is already precharged")
		return
	}

	if !r.poweredDown() {
		done := c.Time + r.spec.RP()

		if r.numActive() == 1 {
			r.flushRank(c.Time, &c)
			r.idle.closeAt(done)
		}

		r.flushBank(b, c.Time, &c)
		b.idle.closeAt(done)
	}

	r.closeBank(b, c.Time)
}

func (r *rank) prechargeAll(c command.Command) {
	active := r.activeBanks()
	if len(active) == 0 {
		r.warn(c, IllegalStateTransition, "no bank is active")
		return
	}

	r.stats.PrechargeAlls++

	done := c.Time + r.spec.RP()

	if !r.poweredDown() {
		r.flushRank(c.Time, &c)
		r.idle.closeAt(done)
	}

	for _, b := range active {
		if !r.poweredDown() {
			r.flushBank(b, c.Time, &c)
			b.idle.closeAt(done)
		}

		r.closeBank(b, c.Time)
	}
}

func (r *rank) closeBank(b *bank, now int64) {
	b.stats.Precharges++
	b.latestPrecharge = now
	r.setState(b, BankPrecharged)
}

// refresh performs an all-bank refresh. Banks that are still open are closed
// by the refresh.
func (r *rank) refresh(c command.Command) {
	if len(r.activeBanks()) > 0 {
		r.warn(c, IllegalStateTransition,
			"refresh issued while banks are active")
	}

	r.stats.Refreshes++

	credit := r.spec.RFC() - r.spec.RP()
	anchor := c.Time + credit
	done := c.Time + r.spec.RFC()

	if !r.poweredDown() {
		r.flushRank(c.Time, &c)
		r.stats.ActiveCycles += credit
		r.accountedUntil = max(r.accountedUntil, anchor)
		r.idle.closeAt(done)
	}

	for _, b := range r.banks {
		if !r.poweredDown() {
			r.flushBank(b, c.Time, &c)
			b.stats.ActiveCycles += credit
			b.accountedUntil = max(b.accountedUntil, anchor)
			b.idle.closeAt(done)
		}

		b.latestPrecharge = anchor
		r.setState(b, BankPrecharged)
	}
}

// refreshBanks performs a per-bank, same-bank, or two-bank refresh.
func (r *rank) refreshBanks(c command.Command) {
	credit := r.spec.RAS() + r.spec.RP()

	for _, i := range r.refreshTargets(c) {
		b := r.banks[i]
		if r.stateOf(b) == BankActive {
			r.warnBank(c, i, IllegalStateTransition,
				"bank refresh requires the bank to be precharged")

			continue
		}

		b.stats.Refreshes++

		if r.poweredDown() {
			continue
		}

		r.flushBank(b, c.Time, &c)

		anchor := c.Time + credit
		b.stats.ActiveCycles += credit
		b.accountedUntil = max(b.accountedUntil, anchor)
		b.latestPrecharge = anchor
		b.idle.closeAt(anchor)
	}
}

func (r *rank) refreshTargets(c command.Command) []int {
	n := len(r.banks)
	target := c.Location.Bank

	switch c.Kind {
	case command.REFSB:
		groups := max(1, r.spec.NumBankGroups())
		perGroup := n / groups
		offset := target % perGroup

		targets := make([]int, 0, groups)
		for g := 0; g < groups; g++ {
			targets = append(targets, g*perGroup+offset)
		}

		return targets
	case command.REFP2B:
		other := (target + n/2) % n
		if other == target {
			return []int{target}
		}

		return []int{target, other}
	default:
		return []int{target}
	}
}

// flushBank attributes the time since the last update of the bank to its
// active or precharge counter. c is nil for window boundaries.
func (r *rank) flushBank(b *bank, now int64, c *command.Command) {
	d := r.elapse(&b.accountedUntil, now, c, "bank accounting")

	if b.state == BankActive {
		b.stats.ActiveCycles += d
		b.stats.IdleActiveCycles += b.idle.activeIdle(now)

		return
	}

	b.stats.PrechargeCycles += d
	b.stats.IdlePrechargeCycles += b.idle.prechargeIdle(now)
}
