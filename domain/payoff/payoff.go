package payoff

import (
	"fmt"
	"math"
)

// Policy selects the settlement rule converting a bet, a posterior, and a
// correctness flag into a signed credit delta.
type Policy string

const (
	// PolicyOddsAgainst reproduces horse-race economics: the prior sets
	// implied odds, so a correct longshot pays a large multiple and a
	// near-certain favorite a small one. Wrong forfeits the full bet.
	PolicyOddsAgainst Policy = "odds_against"

	// PolicyProportionalPosterior pays bet * (1 + posterior) when correct.
	PolicyProportionalPosterior Policy = "proportional_posterior"

	// PolicyLogScore pays bet * (1 + log2(posterior + 0.01)) when correct.
	// The +0.01 offset keeps the log argument strictly positive when the
	// posterior is clamped near zero.
	PolicyLogScore Policy = "log_score"

	// PolicyQuadraticScore applies a Brier-style quadratic rule to both
	// outcomes.
	PolicyQuadraticScore Policy = "quadratic_score"
)

// Policies lists all recognized payoff policies.
var Policies = []Policy{
	PolicyOddsAgainst,
	PolicyProportionalPosterior,
	PolicyLogScore,
	PolicyQuadraticScore,
}

// ParsePolicy validates a configured policy string. Unknown values are a
// configuration error here; Calculate itself never fails on them.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range Policies {
		if Policy(s) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown payoff policy %q", s)
}

// Calculate settles a single bet under the given policy. Pure function:
// identical inputs always yield identical output.
//
// prior is only consulted by odds_against; a missing or non-positive prior
// there degrades to a zero payoff for a correct guess rather than failing.
// An unrecognized policy falls back to all-or-nothing (bet if correct,
// else 0) so a stale config value never breaks settlement.
func Calculate(bet, posterior float64, correct bool, policy Policy, prior float64) float64 {
	switch policy {
	case PolicyOddsAgainst:
		if !correct {
			return -bet
		}
		if prior <= 0 {
			return 0
		}
		return bet/prior - bet

	case PolicyProportionalPosterior:
		if !correct {
			return 0
		}
		return bet * (1 + posterior)

	case PolicyLogScore:
		if !correct {
			return 0
		}
		return bet * (1 + math.Log2(posterior+0.01))

	case PolicyQuadraticScore:
		var score float64
		if correct {
			score = 2*posterior - posterior*posterior
		} else {
			score = -posterior * posterior
		}
		return bet * (1 + score)

	default:
		if correct {
			return bet
		}
		return 0
	}
}
