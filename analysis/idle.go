package analysis

// idleTracker measures the cycles in which an open or closed array does not
// serve any command.
type idleTracker struct {
	// busyUntil is the last cycle of the latest activate, read, or write.
	busyUntil int64

	// idleFrom is the first cycle after the latest precharge or refresh
	// has completed.
	idleFrom int64
}

// activeIdle returns the idle cycles with a row open between the end of the
// latest operation and now.
func (t *idleTracker) activeIdle(now int64) int64 {
	gap := max(0, now-t.busyUntil)
	t.busyUntil = max(t.busyUntil, now)

	return gap
}

// prechargeIdle returns the idle cycles with all rows closed between the end
// of the latest precharge and now.
func (t *idleTracker) prechargeIdle(now int64) int64 {
	gap := max(0, now-t.idleFrom)
	t.idleFrom = max(t.idleFrom, now)

	return gap
}

// occupy marks the array busy up to and including cycle until.
func (t *idleTracker) occupy(until int64) {
	t.busyUntil = max(t.busyUntil, until)
}

// closeAt records that a precharge or refresh completes at cycle at.
func (t *idleTracker) closeAt(at int64) {
	t.idleFrom = at
}
