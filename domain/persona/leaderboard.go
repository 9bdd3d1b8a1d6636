package persona

import (
	"sort"

	"hypotourney/domain/core"
	"hypotourney/domain/ledger"
)

// Competitor is one bettor in the tournament: the human player or a
// synthetic persona. Immutable after creation except for Payoff, set
// exactly once at settlement.
type Competitor struct {
	ID       core.CompetitorID `json:"id"`
	Paradigm core.ParadigmID   `json:"paradigm,omitempty"`
	Persona  Persona           `json:"persona"`
	Bets     ledger.BetVector  `json:"bets"`
	Payoff   *float64          `json:"payoff,omitempty"`
	IsPlayer bool              `json:"is_player"`
}

// Settled reports whether the competitor's payoff has been computed.
func (c *Competitor) Settled() bool {
	return c.Payoff != nil
}

// SetPayoff records the settled payoff. Settlement reruns overwrite it
// wholesale, so recomputation stays idempotent.
func (c *Competitor) SetPayoff(payoff float64) {
	c.Payoff = &payoff
}

// LeaderboardEntry pairs a competitor with its derived rank.
type LeaderboardEntry struct {
	Rank       int        `json:"rank"`
	Competitor Competitor `json:"competitor"`
}

// RankCompetitors sorts settled competitors by payoff, highest first, and
// assigns 1-based ranks. Ties keep the original competitor order (stable
// sort); unsettled competitors sort as zero payoff.
func RankCompetitors(competitors []Competitor) []LeaderboardEntry {
	ranked := make([]Competitor, len(competitors))
	copy(ranked, competitors)

	payoff := func(c Competitor) float64 {
		if c.Payoff == nil {
			return 0
		}
		return *c.Payoff
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return payoff(ranked[i]) > payoff(ranked[j])
	})

	entries := make([]LeaderboardEntry, len(ranked))
	for i, c := range ranked {
		entries[i] = LeaderboardEntry{Rank: i + 1, Competitor: c}
	}
	return entries
}
