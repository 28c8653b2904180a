package domain

import "fmt"

// Ledger is the authoritative set of committed date ranges for one van.
// Invariant: no two entries overlap. All mutation goes through Commit,
// Release, and Replace; call sites never touch the entries directly.
//
// A Ledger is a plain in-memory value. The service layer loads a van's
// entries inside a transaction that holds the van's row lock, manipulates
// the Ledger, and writes the result back — so the check-then-commit pair
// is serialized per van.
type Ledger struct {
	entries []DateRange
}

// NewLedger builds a Ledger from the stored entries for a van.
func NewLedger(entries []DateRange) *Ledger {
	l := &Ledger{entries: make([]DateRange, len(entries))}
	copy(l.entries, entries)
	return l
}

// Entries returns a copy of the committed ranges. Order is not significant.
func (l *Ledger) Entries() []DateRange {
	out := make([]DateRange, len(l.entries))
	copy(out, l.entries)
	return out
}

// IsAvailable reports whether candidate overlaps none of the committed
// entries. Deterministic and side-effect-free; O(n) over the van's entries.
func (l *Ledger) IsAvailable(candidate DateRange) bool {
	_, conflict := l.Conflict(candidate)
	return !conflict
}

// Conflict returns the first committed entry overlapping candidate, if any.
// The conflicting range is attached to UnavailableError for diagnostics.
func (l *Ledger) Conflict(candidate DateRange) (DateRange, bool) {
	for _, e := range l.entries {
		if e.Overlaps(candidate) {
			return e, true
		}
	}
	return DateRange{}, false
}

// Commit adds candidate to the set. The caller must have already verified
// IsAvailable under the same van lock; Commit does not re-check.
func (l *Ledger) Commit(candidate DateRange) {
	l.entries = append(l.entries, candidate)
}

// Release removes the entry exactly equal to r and reports whether one was
// found. A false return signals a prior partial-failure bug; callers must
// surface it (see ErrLedgerInconsistency), never treat it as success.
func (l *Ledger) Release(r DateRange) bool {
	for i, e := range l.entries {
		if e.Equal(r) {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps oldRange for newRange, checking newRange only against the
// remaining entries. On conflict the ledger is left unchanged and an
// UnavailableError carrying the conflicting entry is returned.
func (l *Ledger) Replace(oldRange, newRange DateRange) error {
	released := l.Release(oldRange)
	if conflict, ok := l.Conflict(newRange); ok {
		if released {
			l.entries = append(l.entries, oldRange)
		}
		return &UnavailableError{Conflict: conflict}
	}
	if !released {
		return fmt.Errorf("%w: no ledger entry matches %s", ErrLedgerInconsistency, oldRange)
	}
	l.Commit(newRange)
	return nil
}
