// Package ledger holds the budget accounting for one competitor's bets:
// the current bet vector, the fixed budget, and the append-only round
// history. Mutators validate whole operations; a violation leaves the
// ledger untouched.
package ledger

import (
	"fmt"

	"hypotourney/domain/core"
)

// BetVector maps hypothesis ids to non-negative credit amounts.
type BetVector map[core.HypothesisID]int

// Clone returns a copy safe to hand out or log.
func (v BetVector) Clone() BetVector {
	out := make(BetVector, len(v))
	for id, amount := range v {
		out[id] = amount
	}
	return out
}

// Total returns the credit sum of the vector.
func (v BetVector) Total() int {
	total := 0
	for _, amount := range v {
		total += amount
	}
	return total
}

// RoundKind distinguishes the one initial round from evidence-round raises.
type RoundKind string

const (
	RoundInitial RoundKind = "initial"
	RoundRaise   RoundKind = "raise"
)

// BetRound is an immutable log record of the full bet vector at one point
// in the session. History is append-only; records are never mutated.
type BetRound struct {
	Round    int            `json:"round"`
	Kind     RoundKind      `json:"kind"`
	Bets     BetVector      `json:"bets"`
	PlacedAt core.Timestamp `json:"placed_at"`
}

// Ledger is the per-competitor betting state. It is owned by a single
// session and mutated only through PlaceInitialBets and RaiseBet; no
// locking is needed under the single-player session model.
type Ledger struct {
	Budget  int        `json:"budget"`
	Bets    BetVector  `json:"bets"`
	History []BetRound `json:"history"`
}

// New creates an empty ledger with the given budget.
func New(budget int) *Ledger {
	return &Ledger{
		Budget:  budget,
		Bets:    make(BetVector),
		History: make([]BetRound, 0),
	}
}

// HasInitialBets reports whether the initial round has been recorded.
func (l *Ledger) HasInitialBets() bool {
	for _, round := range l.History {
		if round.Kind == RoundInitial {
			return true
		}
	}
	return false
}

// TotalBet returns the credit sum of the current bets. Always <= Budget;
// the two mutators maintain the invariant.
func (l *Ledger) TotalBet() int {
	return l.Bets.Total()
}

// Remaining returns the unspent budget.
func (l *Ledger) Remaining() int {
	return l.Budget - l.TotalBet()
}

// PlaceInitialBets records the opening bet vector. Valid only once, before
// any other round exists; every entry must be non-negative and the total
// must fit the budget. The whole vector is rejected on any violation.
func (l *Ledger) PlaceInitialBets(vector BetVector) error {
	if l.HasInitialBets() {
		return core.ErrBetsAlreadySet
	}
	total := 0
	for id, amount := range vector {
		if amount < 0 {
			return fmt.Errorf("%w: %s is %d", core.ErrNegativeBet, id, amount)
		}
		total += amount
	}
	if total > l.Budget {
		return fmt.Errorf("%w: %d > %d", core.ErrBudgetExceeded, total, l.Budget)
	}

	l.Bets = vector.Clone()
	l.appendRound(RoundInitial)
	return nil
}

// RaiseBet increases a single hypothesis bet during an evidence round.
// Bets only ever go up: sunk cost, no backing out. Requires an initial
// round, a strictly positive delta, and room in the budget.
func (l *Ledger) RaiseBet(hypothesis core.HypothesisID, delta int) error {
	if !l.HasInitialBets() {
		return core.ErrNoInitialBets
	}
	if delta <= 0 {
		return fmt.Errorf("%w: got %d", core.ErrNonPositiveRaise, delta)
	}
	if l.TotalBet()+delta > l.Budget {
		return fmt.Errorf("%w: %d + %d > %d", core.ErrBudgetExceeded, l.TotalBet(), delta, l.Budget)
	}

	l.Bets[hypothesis] += delta
	l.appendRound(RoundRaise)
	return nil
}

// Reset clears bets and history back to the empty state; used when a
// scenario restarts.
func (l *Ledger) Reset() {
	l.Bets = make(BetVector)
	l.History = make([]BetRound, 0)
}

// appendRound logs the full current vector as a new history record.
func (l *Ledger) appendRound(kind RoundKind) {
	l.History = append(l.History, BetRound{
		Round:    len(l.History) + 1,
		Kind:     kind,
		Bets:     l.Bets.Clone(),
		PlacedAt: core.Now(),
	})
}
