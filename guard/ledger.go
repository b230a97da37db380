// api/guard/ledger.go
package guard

import "sync"

// Ledger retains, in insertion order, every decision made during the life of
// the process. It is append-only: blocked decisions are retained alongside
// allowed ones, since blocked decisions are the most important audit signal.
//
// A Ledger is injected into each Guard rather than shared as a package
// global, so a process can run independent guards (for example per tenant)
// and tests stay hermetic.
type Ledger struct {
	mu        sync.Mutex
	decisions []Decision
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a decision. Every decision is retained; there are no
// rejection rules.
func (l *Ledger) Append(decision Decision) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decisions = append(l.decisions, decision)
}

// Snapshot returns a defensive copy of the recorded decisions so callers
// cannot mutate history. This is the only read interface offered to export
// tooling; callers filter the returned sequence themselves.
func (l *Ledger) Snapshot() []Decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Decision, len(l.decisions))
	copy(out, l.decisions)
	return out
}

// Len reports the number of recorded decisions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.decisions)
}

// Clear drops all recorded decisions. It exists for test and reset paths
// only and must never be called from a decision path.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decisions = nil
}
