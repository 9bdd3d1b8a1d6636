package game

import (
	"fmt"

	"hypotourney/domain/core"
)

// Phase is one step of the fixed tournament sequence. Phases are totally
// ordered by their index in PhaseOrder; no phase is skippable.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseHypotheses Phase = "hypotheses"
	PhasePriors     Phase = "priors"
	PhaseBetting    Phase = "betting"
	PhaseEvidence   Phase = "evidence"
	PhaseResolution Phase = "resolution"
	PhaseReport     Phase = "report"
	PhaseDebrief    Phase = "debrief"
)

// PhaseOrder is the canonical phase sequence.
var PhaseOrder = []Phase{
	PhaseSetup,
	PhaseHypotheses,
	PhasePriors,
	PhaseBetting,
	PhaseEvidence,
	PhaseResolution,
	PhaseReport,
	PhaseDebrief,
}

// Index returns the position of p in the phase sequence, or -1 for an
// unknown phase.
func (p Phase) Index() int {
	for i, phase := range PhaseOrder {
		if phase == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of the canonical phases.
func (p Phase) Valid() bool {
	return p.Index() >= 0
}

// Next returns the phase after p, or p itself when p is the terminal phase.
func (p Phase) Next() Phase {
	i := p.Index()
	if i < 0 || i >= len(PhaseOrder)-1 {
		return p
	}
	return PhaseOrder[i+1]
}

// ParsePhase validates a phase string from an external caller.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown phase %q", s)
	}
	return p, nil
}

// PhaseTracker tracks a session's position in the phase sequence: the
// current phase, the set of phases completed (exited forward from), and
// the furthest phase reached.
type PhaseTracker struct {
	Current   Phase          `json:"current"`
	Furthest  Phase          `json:"furthest"`
	Completed map[Phase]bool `json:"completed"`
}

// NewPhaseTracker starts a tracker at setup.
func NewPhaseTracker() *PhaseTracker {
	return &PhaseTracker{
		Current:   PhaseSetup,
		Furthest:  PhaseSetup,
		Completed: make(map[Phase]bool),
	}
}

// SetPhase unconditionally moves the tracker to p. On a forward transition
// past the furthest phase reached so far, the previous phase is marked
// completed and the furthest marker advances. Backward moves (revisits)
// change only the current phase.
func (t *PhaseTracker) SetPhase(p Phase) error {
	if !p.Valid() {
		return fmt.Errorf("unknown phase %q", p)
	}
	if p.Index() > t.Furthest.Index() {
		t.Completed[t.Current] = true
		t.Furthest = p
	}
	t.Current = p
	return nil
}

// Advance moves the tracker one phase forward from the current phase.
// In-phase actions (bet submission, evidence reveal, analysis completion)
// drive progress through here.
func (t *PhaseTracker) Advance() error {
	return t.SetPhase(t.Current.Next())
}

// Navigable reports whether a participant may jump directly to p:
// any phase up to and including the furthest reached is revisitable,
// anything past it is not.
func (t *PhaseTracker) Navigable(p Phase) bool {
	i := p.Index()
	return i >= 0 && i <= t.Furthest.Index()
}

// Navigate moves to a phase by direct navigation, enforcing the gating rule.
func (t *PhaseTracker) Navigate(p Phase) error {
	if !p.Valid() {
		return fmt.Errorf("unknown phase %q", p)
	}
	if !t.Navigable(p) {
		return fmt.Errorf("%w: %s is past %s", core.ErrPhaseNotNavigable, p, t.Furthest)
	}
	t.Current = p
	return nil
}

// IsCompleted reports whether p has been exited forward from.
func (t *PhaseTracker) IsCompleted(p Phase) bool {
	return t.Completed[p]
}

// Reset returns the tracker to its initial state; used by "play again".
func (t *PhaseTracker) Reset() {
	t.Current = PhaseSetup
	t.Furthest = PhaseSetup
	t.Completed = make(map[Phase]bool)
}
