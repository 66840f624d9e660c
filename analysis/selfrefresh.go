package analysis

import (
	"fmt"
	"math"

	"github.com/sarchlab/drampower/command"
)

// selfRefreshCredit tracks how much of the implicit refresh that starts a
// self-refresh has already been credited by earlier window flushes.
type selfRefreshCredit struct {
	active    int64
	precharge int64
}

func (r *rank) enterSelfRefresh(c command.Command) {
	if r.poweredDown() {
		r.warn(c, IllegalStateTransition,
			fmt.Sprintf("self-refresh entry while in %s", r.mode))

		return
	}

	if r.numActive() > 0 {
		r.warn(c, IllegalStateTransition,
			"banks are active, self-refresh requires all banks precharged")
	}

	r.stats.SelfRefreshes++
	r.suspend(c, make([]BankState, len(r.banks)))
	r.srefCredit = selfRefreshCredit{}
	r.mode = SelfRefresh
}

// The self-refresh interval starting at entry e is split into the active
// part of the implicit refresh [e, e+tRFC-tRP), its precharge part
// [e+tRFC-tRP, e+tRFC), and plain self-refresh from e+tRFC on.
func (r *rank) exitSelfRefresh(c command.Command) {
	if r.mode != SelfRefresh {
		r.warn(c, IllegalStateTransition,
			fmt.Sprintf("self-refresh exit while in %s", r.mode))

		return
	}

	now := c.Time
	duration := now - r.entryCycle

	if duration < 0 {
		r.warn(c, NegativeDuration, "self-refresh entry is in the future")
		duration = 0
	}

	if duration < r.spec.CKESR() {
		r.warn(c, SelfRefreshBelowMinimum, fmt.Sprintf(
			"self-refresh lasted %d cycles, less than tCKESR (%d)",
			duration, r.spec.CKESR()))
	}

	rp := r.spec.RP()
	rfc := r.spec.RFC()
	refAct := rfc - rp
	credit := r.srefCredit

	var deficit int64

	switch {
	case duration >= rfc:
		r.stats.SelfRefreshRefreshActiveCycles += refAct - credit.active
		r.stats.SelfRefreshRefreshPrechargeCycles += rp - credit.precharge

		plainFrom := max(r.powerCursor, r.entryCycle+rfc)
		r.stats.SelfRefreshCycles += r.elapse(
			&plainFrom, now, &c, "self-refresh accounting")
	case duration >= refAct:
		preDone := duration - refAct
		r.stats.SelfRefreshRefreshActiveCycles += refAct - credit.active
		r.stats.SelfRefreshRefreshPrechargeCycles += preDone - credit.precharge

		deficit = rp - preDone
		r.stats.SelfRefreshExitPrechargeCycles += deficit
	default:
		r.stats.SelfRefreshRefreshActiveCycles += duration - credit.active
		r.stats.SelfRefreshExitActiveCycles += refAct - duration
		r.stats.SelfRefreshExitPrechargeCycles += rp

		deficit = refAct - duration + rp
	}

	exitTime := r.spec.ExitSelfRefresh()
	powerUp := exitTime - deficit
	if powerUp < 0 {
		r.warn(c, NegativeDuration,
			"self-refresh exit is shorter than the unfinished refresh")

		powerUp = 0
	}

	r.stats.SelfRefreshPowerUpCycles += powerUp

	r.powerCursor = now
	r.srefCredit = selfRefreshCredit{}

	anchor := now + deficit
	r.resume(anchor, max(anchor, now+exitTime))
}

// flushSelfRefresh credits the part of the self-refresh interval between
// the last flush and now.
func (r *rank) flushSelfRefresh(now int64, c *command.Command) {
	from := r.powerCursor
	if r.elapse(&r.powerCursor, now, c, "self-refresh accounting") == 0 {
		return
	}

	e := r.entryCycle
	refAct := r.spec.RFC() - r.spec.RP()

	act := overlap(from, now, e, e+refAct)
	pre := overlap(from, now, e+refAct, e+r.spec.RFC())
	plain := overlap(from, now, e+r.spec.RFC(), math.MaxInt64)

	r.stats.SelfRefreshRefreshActiveCycles += act
	r.stats.SelfRefreshRefreshPrechargeCycles += pre
	r.stats.SelfRefreshCycles += plain

	r.srefCredit.active += act
	r.srefCredit.precharge += pre
}

// overlap returns the length of the intersection of [a0, a1) and [b0, b1).
func overlap(a0, a1, b0, b1 int64) int64 {
	return max(0, min(a1, b1)-max(a0, b0))
}
