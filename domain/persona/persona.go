// Package persona synthesizes the AI competitors a participant plays
// against: one bettor per paradigm, with bets derived mechanically from
// that paradigm's priors, plus the ranking of everyone at settlement.
package persona

import (
	"fmt"
	"math"
	"strings"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/domain/ledger"
)

// Persona is the display identity of a synthetic competitor.
type Persona struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// byParadigmID is the exact-match lookup for well-known paradigm keys.
var byParadigmID = map[core.ParadigmID]Persona{
	"K1": {Icon: "🏛️", Name: "The Institutionalist", Description: "Trusts official accounts and structural explanations"},
	"K2": {Icon: "🔬", Name: "The Empiricist", Description: "Follows measurable evidence wherever it leads"},
	"K3": {Icon: "🕵️", Name: "The Skeptic", Description: "Assumes incentives distort every official story"},
	"K4": {Icon: "🌐", Name: "The Systems Thinker", Description: "Sees emergent causes where others see actors"},
}

// keywordRule maps name fragments to a persona. Rules are evaluated in
// order, first match wins; keep the table data-driven so new personas are
// an entry, not a branch.
type keywordRule struct {
	keywords []string
	persona  Persona
}

var keywordRules = []keywordRule{
	{[]string{"techno", "optim"}, Persona{Icon: "🚀", Name: "The Techno-Optimist", Description: "Bets on progress and capability explanations"}},
	{[]string{"conspir", "cover"}, Persona{Icon: "🕳️", Name: "The Conspiracist", Description: "Favors hidden-hand explanations over coincidence"}},
	{[]string{"market", "econ"}, Persona{Icon: "📈", Name: "The Economist", Description: "Prices everything through incentives and markets"}},
	{[]string{"histor", "tradition"}, Persona{Icon: "📜", Name: "The Historian", Description: "Reads the present through precedent"}},
	{[]string{"precaution", "risk", "safety"}, Persona{Icon: "🛡️", Name: "The Precautionary", Description: "Weights downside scenarios heavily"}},
}

// Resolve maps a paradigm to its display persona: exact id match first,
// then keyword rules against the paradigm's name, then a generic default
// carrying the paradigm's own name.
func Resolve(paradigm game.Paradigm) Persona {
	if p, ok := byParadigmID[paradigm.ID]; ok {
		return p
	}

	name := strings.ToLower(paradigm.Name)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.persona
			}
		}
	}

	return Persona{
		Icon:        "🎲",
		Name:        paradigm.Name,
		Description: fmt.Sprintf("Bets the priors of the %s lens", paradigm.Name),
	}
}

// GenerateBets allocates a paradigm's budget across hypotheses in
// proportion to its normalized priors. Every hypothesis but the last gets
// round(budget * prior / sum); the last absorbs the residual so the vector
// sums to the budget exactly despite rounding. The last-ordered hypothesis
// therefore carries a slightly biased allocation; accepted trade-off.
func GenerateBets(priors game.PriorVector, order []core.HypothesisID, budget int) ledger.BetVector {
	bets := make(ledger.BetVector, len(order))
	if len(order) == 0 || budget <= 0 {
		for _, h := range order {
			bets[h] = 0
		}
		return bets
	}

	var sum float64
	for _, h := range order {
		sum += priors[h]
	}

	allocated := 0
	for i, h := range order {
		if i == len(order)-1 {
			bets[h] = budget - allocated
			break
		}
		var bet int
		if sum > 0 {
			bet = int(math.Round(float64(budget) * priors[h] / sum))
		}
		bets[h] = bet
		allocated += bet
	}
	return bets
}
