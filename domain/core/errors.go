package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrScenarioNotFound   = fmt.Errorf("%w: scenario", ErrNotFound)
	ErrSessionNotFound    = fmt.Errorf("%w: session", ErrNotFound)
	ErrHypothesisNotFound = fmt.Errorf("%w: hypothesis", ErrNotFound)
	ErrParadigmNotFound   = fmt.Errorf("%w: paradigm", ErrNotFound)

	// Ledger violations - the attempted mutation is rejected whole
	ErrBudgetExceeded   = errors.New("total bet exceeds budget")
	ErrNegativeBet      = errors.New("bet amount must be non-negative")
	ErrNonPositiveRaise = errors.New("raise amount must be positive")
	ErrNoInitialBets    = errors.New("no initial bets placed")
	ErrBetsAlreadySet   = errors.New("initial bets already placed")

	// Session/phase errors
	ErrScenarioNotLoaded = errors.New("scenario not loaded")
	ErrPhaseNotNavigable = errors.New("phase not yet reachable")
	ErrPhaseOutOfOrder   = errors.New("action not legal in current phase")

	// Settlement errors
	ErrAlreadySettled = errors.New("payoffs already settled")
	ErrNotSettled     = errors.New("payoffs not yet settled")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsLedgerViolation(err error) bool {
	return errors.Is(err, ErrBudgetExceeded) ||
		errors.Is(err, ErrNegativeBet) ||
		errors.Is(err, ErrNonPositiveRaise) ||
		errors.Is(err, ErrNoInitialBets) ||
		errors.Is(err, ErrBetsAlreadySet)
}

func IsPhaseError(err error) bool {
	return errors.Is(err, ErrPhaseNotNavigable) ||
		errors.Is(err, ErrPhaseOutOfOrder)
}
