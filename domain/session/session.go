// Package session holds the session-scoped context for one tournament:
// the loaded scenario, the participant's phase position and ledger, the
// synthetic competitors, and the settlement results. All engine state
// lives here explicitly; nothing is ambient.
package session

import (
	"fmt"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/domain/ledger"
	"hypotourney/domain/payoff"
	"hypotourney/domain/persona"
	"hypotourney/domain/score"
)

// PlayerCompetitorID is the fixed id of the human participant's entry.
const PlayerCompetitorID = core.CompetitorID("player")

// Session is created at scenario load and destroyed at "new analysis".
// "Play again" resets it in place with the ledger cleared.
type Session struct {
	ID                core.SessionID                       `json:"id"`
	Scenario          *game.Scenario                       `json:"scenario"`
	Phase             *game.PhaseTracker                   `json:"phase"`
	Ledger            *ledger.Ledger                       `json:"ledger"`
	Policy            payoff.Policy                        `json:"policy"`
	SelectedParadigms []core.ParadigmID                    `json:"selected_paradigms"`
	ActiveParadigm    core.ParadigmID                      `json:"active_paradigm"`
	Competitors       []persona.Competitor                 `json:"competitors"`
	Predictions       map[core.ClusterID]core.HypothesisID `json:"predictions"`
	Revealed          int                                  `json:"revealed"`
	PredictionSummary *score.Summary                       `json:"prediction_summary,omitempty"`
	CreatedAt         core.Timestamp                       `json:"created_at"`
	UpdatedAt         core.Timestamp                       `json:"updated_at"`
}

// New creates a session for a loaded scenario. The payoff policy comes from
// the scenario's scoring config; an unparseable value is a configuration
// error at load time.
func New(scenario *game.Scenario) (*Session, error) {
	if scenario == nil {
		return nil, core.ErrScenarioNotLoaded
	}
	policy, err := payoff.ParsePolicy(scenario.Scoring.PayoffPolicy)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.ID, err)
	}

	now := core.Now()
	s := &Session{
		ID:          core.SessionID(core.NewID()),
		Scenario:    scenario,
		Phase:       game.NewPhaseTracker(),
		Ledger:      ledger.New(scenario.Scoring.Budget),
		Policy:      policy,
		Predictions: make(map[core.ClusterID]core.HypothesisID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(scenario.Paradigms) > 0 {
		s.ActiveParadigm = scenario.Paradigms[0].ID
	}
	return s, nil
}

// SelectParadigms records the participant's chosen lenses and the one in
// scoring focus. The active paradigm must be among the selected.
func (s *Session) SelectParadigms(selected []core.ParadigmID, active core.ParadigmID) error {
	if s.Scenario.FindParadigm(active) == nil {
		return fmt.Errorf("%w: %s", core.ErrParadigmNotFound, active)
	}
	found := false
	for _, id := range selected {
		if s.Scenario.FindParadigm(id) == nil {
			return fmt.Errorf("%w: %s", core.ErrParadigmNotFound, id)
		}
		if id == active {
			found = true
		}
	}
	if !found {
		return core.NewValidationError("active_paradigm", "must be one of the selected paradigms")
	}
	s.SelectedParadigms = selected
	s.ActiveParadigm = active
	s.touch()
	return nil
}

// SeedCompetitors creates one persona per scenario paradigm, bets derived
// from that paradigm's priors, plus the player's entry mirroring the
// ledger. Runs when the betting phase opens; reseeding replaces the field
// wholesale so a restart cannot duplicate competitors.
func (s *Session) SeedCompetitors() {
	order := s.Scenario.HypothesisOrder()
	budget := s.Scenario.Scoring.Budget

	competitors := make([]persona.Competitor, 0, len(s.Scenario.Paradigms)+1)
	competitors = append(competitors, persona.Competitor{
		ID:       PlayerCompetitorID,
		Persona:  persona.Persona{Icon: "🧑", Name: "You", Description: "The human participant"},
		Bets:     s.Ledger.Bets.Clone(),
		IsPlayer: true,
	})
	for _, paradigm := range s.Scenario.Paradigms {
		competitors = append(competitors, persona.Competitor{
			ID:       core.CompetitorID(core.NewID()),
			Paradigm: paradigm.ID,
			Persona:  persona.Resolve(paradigm),
			Bets:     persona.GenerateBets(s.Scenario.Priors[paradigm.ID], order, budget),
		})
	}
	s.Competitors = competitors
	s.touch()
}

// RevealNext reveals the next evidence cluster in insertion order and
// returns it. Returns nil when everything is already revealed.
func (s *Session) RevealNext() *game.EvidenceCluster {
	if s.Revealed >= len(s.Scenario.Evidence) {
		return nil
	}
	cluster := &s.Scenario.Evidence[s.Revealed]
	s.Revealed++
	s.touch()
	return cluster
}

// RevealAll reveals every remaining cluster at once.
func (s *Session) RevealAll() {
	s.Revealed = len(s.Scenario.Evidence)
	s.touch()
}

// AllRevealed reports whether every evidence cluster has been revealed.
func (s *Session) AllRevealed() bool {
	return s.Revealed >= len(s.Scenario.Evidence)
}

// RecordPrediction captures the participant's forecast for a cluster
// before its reveal.
func (s *Session) RecordPrediction(cluster core.ClusterID, predicted core.HypothesisID) error {
	if s.Scenario.FindHypothesis(predicted) == nil {
		return fmt.Errorf("%w: %s", core.ErrHypothesisNotFound, predicted)
	}
	s.Predictions[cluster] = predicted
	s.touch()
	return nil
}

// WinningHypothesis returns the hypothesis the finalized posteriors point
// to: the highest posterior under the active paradigm, ties broken by
// scenario order.
func (s *Session) WinningHypothesis() core.HypothesisID {
	var winner core.HypothesisID
	best := -1.0
	for _, h := range s.Scenario.HypothesisOrder() {
		p := s.Scenario.Posteriors.Raw(s.ActiveParadigm, h)
		if p > best {
			best = p
			winner = h
		}
	}
	return winner
}

// Settle computes every competitor's payoff against the finalized
// posteriors and scores the participant's predictions. Requires that all
// evidence has been revealed. A settled session stays settled until
// PlayAgain clears it.
func (s *Session) Settle() error {
	if !s.AllRevealed() {
		return fmt.Errorf("%w: evidence still unrevealed", core.ErrPhaseOutOfOrder)
	}
	if s.PredictionSummary != nil {
		return core.ErrAlreadySettled
	}

	// Player bets live in the ledger until settlement
	for i := range s.Competitors {
		if s.Competitors[i].IsPlayer {
			s.Competitors[i].Bets = s.Ledger.Bets.Clone()
		}
	}

	winner := s.WinningHypothesis()
	for i := range s.Competitors {
		total := 0.0
		for h, bet := range s.Competitors[i].Bets {
			posterior := s.Scenario.Posteriors.Get(s.ActiveParadigm, h)
			prior := s.Scenario.Priors.Raw(s.ActiveParadigm, h)
			total += payoff.Calculate(float64(bet), posterior, h == winner, s.Policy, prior)
		}
		s.Competitors[i].SetPayoff(total)
	}

	summary := score.ScorePredictions(s.Scenario.Evidence, s.Predictions, s.Scenario.Scoring)
	s.PredictionSummary = &summary
	s.touch()
	return nil
}

// Leaderboard ranks all competitors. Valid only after settlement.
func (s *Session) Leaderboard() ([]persona.LeaderboardEntry, error) {
	for i := range s.Competitors {
		if !s.Competitors[i].Settled() {
			return nil, core.ErrNotSettled
		}
	}
	if len(s.Competitors) == 0 {
		return nil, core.ErrNotSettled
	}
	return persona.RankCompetitors(s.Competitors), nil
}

// PlayAgain resets the session for another run of the same scenario: the
// ledger, phase position, competitors, reveals, and predictions all clear.
func (s *Session) PlayAgain() {
	s.Ledger.Reset()
	s.Phase.Reset()
	s.Competitors = nil
	s.Predictions = make(map[core.ClusterID]core.HypothesisID)
	s.Revealed = 0
	s.PredictionSummary = nil
	s.touch()
}

func (s *Session) touch() {
	s.UpdatedAt = core.Now()
}
