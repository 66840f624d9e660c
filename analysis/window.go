package analysis

// closeWindow flushes all open-ended accumulations at the boundary and
// returns the counters of the window. The logical state of the banks and of
// the rank is not changed, so closing twice at the same boundary returns the
// same counters.
func (r *rank) closeWindow(boundary int64) RankStats {
	r.flush(boundary)

	return r.snapshot()
}

func (r *rank) snapshot() RankStats {
	s := r.stats
	s.Rank = r.index
	s.PowerMode = r.mode

	s.Banks = make([]BankStats, len(r.banks))
	for i, b := range r.banks {
		bs := b.stats
		bs.Bank = i
		bs.State = r.stateOf(b)
		s.Banks[i] = bs
	}

	return s
}

// openWindow zeroes the per-window counters. Anchors, cursors, and the
// self-refresh credit carry over to the new window.
func (r *rank) openWindow() {
	r.stats = RankStats{}
	for _, b := range r.banks {
		b.stats = BankStats{}
	}
}

func (r *rank) takeWarnings() []Warning {
	w := r.warnings
	r.warnings = nil

	return w
}
