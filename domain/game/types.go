package game

import (
	"hypotourney/domain/core"
)

// Scenario is the immutable description of one tournament: the proposition
// under dispute, the worldview lenses it is examined through, and the
// competing explanations. Owned by the session; never mutated after load.
type Scenario struct {
	ID          core.ID           `json:"id"`
	Proposition string            `json:"proposition"`
	Briefing    string            `json:"briefing,omitempty"` // markdown shown on the setup page
	Paradigms   []Paradigm        `json:"paradigms"`
	Hypotheses  []Hypothesis      `json:"hypotheses"`
	Evidence    []EvidenceCluster `json:"evidence,omitempty"`
	Priors      PriorSet          `json:"priors"`
	Posteriors  PriorSet          `json:"posteriors,omitempty"`
	Scoring     ScoringConfig     `json:"scoring"`
}

// Paradigm is a worldview lens producing its own prior and posterior
// distribution over the hypotheses.
type Paradigm struct {
	ID          core.ParadigmID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
}

// Hypothesis is one candidate explanation competing for posterior mass.
type Hypothesis struct {
	ID        core.HypothesisID `json:"id"`
	Name      string            `json:"name"`
	Paradigms []core.ParadigmID `json:"paradigms,omitempty"`
}

// EvidenceCluster groups evidence items revealed together. Once resolved it
// carries the hypothesis the cluster actually pointed to, used for
// prediction scoring. Reveal order is insertion order.
type EvidenceCluster struct {
	ID     core.ClusterID    `json:"id"`
	Name   string            `json:"name"`
	Items  []EvidenceItem    `json:"items"`
	Actual core.HypothesisID `json:"actual,omitempty"`
}

// EvidenceItem is a single observation inside a cluster, carrying the
// already-computed likelihood ratio from the upstream analysis.
type EvidenceItem struct {
	ID              string  `json:"id"`
	Summary         string  `json:"summary"`
	LikelihoodRatio float64 `json:"likelihood_ratio"`
}

// ScoringConfig holds scenario-level scoring knobs. Prediction bonus
// magnitudes live here, not in the scorer.
type ScoringConfig struct {
	Budget        int     `json:"budget"`
	PayoffPolicy  string  `json:"payoff_policy"`
	CorrectBonus  float64 `json:"correct_bonus"`
	IncorrectCost float64 `json:"incorrect_cost"`
}

// DefaultScoring returns the scoring knobs used when a scenario does not
// override them.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		Budget:        100,
		PayoffPolicy:  "odds_against",
		CorrectBonus:  10,
		IncorrectCost: 0,
	}
}

// HypothesisOrder returns hypothesis ids in scenario order. Persona bet
// allocation depends on this ordering (the last hypothesis absorbs the
// rounding residual).
func (s *Scenario) HypothesisOrder() []core.HypothesisID {
	order := make([]core.HypothesisID, 0, len(s.Hypotheses))
	for _, h := range s.Hypotheses {
		order = append(order, h.ID)
	}
	return order
}

// FindParadigm returns the paradigm with the given id, or nil.
func (s *Scenario) FindParadigm(id core.ParadigmID) *Paradigm {
	for i := range s.Paradigms {
		if s.Paradigms[i].ID == id {
			return &s.Paradigms[i]
		}
	}
	return nil
}

// FindHypothesis returns the hypothesis with the given id, or nil.
func (s *Scenario) FindHypothesis(id core.HypothesisID) *Hypothesis {
	for i := range s.Hypotheses {
		if s.Hypotheses[i].ID == id {
			return &s.Hypotheses[i]
		}
	}
	return nil
}
