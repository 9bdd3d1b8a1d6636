package persona

import (
	"testing"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
)

func TestGenerateBets_SumsExactly(t *testing.T) {
	priors := game.PriorVector{"H1": 0.2, "H2": 0.3, "H3": 0.5}
	order := []core.HypothesisID{"H1", "H2", "H3"}

	bets := GenerateBets(priors, order, 100)

	total := 0
	for _, h := range order {
		total += bets[h]
	}
	if total != 100 {
		t.Errorf("bets sum to %d, want exactly 100: %v", total, bets)
	}
	if bets["H1"] != 20 || bets["H2"] != 30 {
		t.Errorf("proportional allocation off: %v", bets)
	}
	// last hypothesis absorbs the residual
	if bets["H3"] != 100-bets["H1"]-bets["H2"] {
		t.Errorf("H3 should absorb residual: %v", bets)
	}
}

func TestGenerateBets_NoRoundingDrift(t *testing.T) {
	// thirds never divide evenly; the residual rule keeps the sum exact
	priors := game.PriorVector{"H1": 1, "H2": 1, "H3": 1}
	order := []core.HypothesisID{"H1", "H2", "H3"}

	for _, budget := range []int{0, 1, 10, 99, 100, 250} {
		bets := GenerateBets(priors, order, budget)
		total := 0
		for _, h := range order {
			total += bets[h]
		}
		if total != budget && budget > 0 {
			t.Errorf("budget %d: bets sum to %d: %v", budget, total, bets)
		}
	}
}

func TestGenerateBets_UnnormalizedPriors(t *testing.T) {
	// vectors that do not sum to 1 are normalized by their own sum
	priors := game.PriorVector{"H1": 2, "H2": 3, "H3": 5}
	order := []core.HypothesisID{"H1", "H2", "H3"}

	bets := GenerateBets(priors, order, 100)
	if bets["H1"] != 20 || bets["H2"] != 30 || bets["H3"] != 50 {
		t.Errorf("normalized allocation off: %v", bets)
	}
}

func TestGenerateBets_DegenerateInputs(t *testing.T) {
	order := []core.HypothesisID{"H1", "H2"}

	// zero-sum priors put everything on the residual hypothesis
	bets := GenerateBets(game.PriorVector{}, order, 50)
	if bets["H1"] != 0 || bets["H2"] != 50 {
		t.Errorf("zero priors allocation = %v", bets)
	}

	// empty order or zero budget yield empty allocations
	if bets := GenerateBets(game.PriorVector{"H1": 1}, nil, 100); len(bets) != 0 {
		t.Errorf("empty order allocation = %v", bets)
	}
	bets = GenerateBets(game.PriorVector{"H1": 1, "H2": 1}, order, 0)
	if bets["H1"] != 0 || bets["H2"] != 0 {
		t.Errorf("zero budget allocation = %v", bets)
	}
}

func TestResolve_ExactIDMatch(t *testing.T) {
	p := Resolve(game.Paradigm{ID: "K1", Name: "whatever"})
	if p.Name != "The Institutionalist" {
		t.Errorf("K1 resolved to %q", p.Name)
	}
}

func TestResolve_KeywordRules(t *testing.T) {
	testCases := []struct {
		paradigmName string
		wantPersona  string
	}{
		{"Techno-optimist futurism", "The Techno-Optimist"},
		{"Optimistic acceleration", "The Techno-Optimist"},
		{"Market realism", "The Economist"},
		{"Historical materialism", "The Historian"},
		{"Risk-first governance", "The Precautionary"},
	}

	for _, tc := range testCases {
		p := Resolve(game.Paradigm{ID: "X9", Name: tc.paradigmName})
		if p.Name != tc.wantPersona {
			t.Errorf("Resolve(%q) = %q, want %q", tc.paradigmName, p.Name, tc.wantPersona)
		}
	}
}

func TestResolve_DefaultCarriesParadigmName(t *testing.T) {
	p := Resolve(game.Paradigm{ID: "Z1", Name: "Quietism"})
	if p.Name != "Quietism" {
		t.Errorf("default persona name = %q, want paradigm name", p.Name)
	}
}

func TestRankCompetitors(t *testing.T) {
	pay := func(v float64) *float64 { return &v }
	competitors := []Competitor{
		{ID: "player", IsPlayer: true, Payoff: pay(12)},
		{ID: "a", Payoff: pay(40)},
		{ID: "b", Payoff: pay(-10)},
		{ID: "c", Payoff: pay(12)},
	}

	entries := RankCompetitors(competitors)

	wantOrder := []core.CompetitorID{"a", "player", "c", "b"}
	for i, want := range wantOrder {
		if entries[i].Competitor.ID != want {
			t.Errorf("rank %d = %s, want %s", i+1, entries[i].Competitor.ID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entry %d rank = %d", i, entries[i].Rank)
		}
	}
}

func TestRankCompetitors_TiesStable(t *testing.T) {
	// ties keep original competitor order
	pay := func(v float64) *float64 { return &v }
	competitors := []Competitor{
		{ID: "first", Payoff: pay(5)},
		{ID: "second", Payoff: pay(5)},
		{ID: "third", Payoff: pay(5)},
	}
	entries := RankCompetitors(competitors)
	for i, want := range []core.CompetitorID{"first", "second", "third"} {
		if entries[i].Competitor.ID != want {
			t.Errorf("tied rank %d = %s, want %s", i+1, entries[i].Competitor.ID, want)
		}
	}
}
