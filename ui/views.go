package ui

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/domain/persona"
	"hypotourney/domain/prob"
	"hypotourney/domain/score"
	"hypotourney/domain/session"
)

// SessionView is the JSON shape of a running session. Probability numbers
// go out pre-formatted so every surface renders them the same way.
type SessionView struct {
	ID             core.SessionID                       `json:"id"`
	Proposition    string                               `json:"proposition"`
	BriefingHTML   string                               `json:"briefing_html,omitempty"`
	Phase          game.Phase                           `json:"phase"`
	Furthest       game.Phase                           `json:"furthest"`
	Phases         []PhaseView                          `json:"phases"`
	Paradigms      []ParadigmView                       `json:"paradigms"`
	ActiveParadigm core.ParadigmID                      `json:"active_paradigm"`
	Hypotheses     []HypothesisView                     `json:"hypotheses"`
	Ledger         LedgerView                           `json:"ledger"`
	Evidence       []ClusterView                        `json:"evidence"`
	Predictions    map[core.ClusterID]core.HypothesisID `json:"predictions,omitempty"`
	Settled        bool                                 `json:"settled"`
	Winner         core.HypothesisID                    `json:"winner,omitempty"`
	Scoring        *score.Summary                       `json:"prediction_summary,omitempty"`
	UpdatedAt      core.Timestamp                       `json:"updated_at"`
}

// PhaseView carries per-phase navigation state for the stepper.
type PhaseView struct {
	Phase     game.Phase `json:"phase"`
	Navigable bool       `json:"navigable"`
	Completed bool       `json:"completed"`
	Current   bool       `json:"current"`
}

// ParadigmView is one worldview lens with its persona identity.
type ParadigmView struct {
	ID          core.ParadigmID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Icon        string          `json:"icon"`
	PersonaName string          `json:"persona_name"`
	Selected    bool            `json:"selected"`
	Active      bool            `json:"active"`
}

// HypothesisView is one hypothesis under the active paradigm.
type HypothesisView struct {
	ID        core.HypothesisID `json:"id"`
	Name      string            `json:"name"`
	Prior     string            `json:"prior"`
	Posterior string            `json:"posterior,omitempty"`
	Bet       int               `json:"bet"`
}

// LedgerView summarizes the participant's credit position.
type LedgerView struct {
	Budget    int `json:"budget"`
	TotalBet  int `json:"total_bet"`
	Remaining int `json:"remaining"`
	Rounds    int `json:"rounds"`
}

// ClusterView is a revealed evidence cluster.
type ClusterView struct {
	ID    core.ClusterID     `json:"id"`
	Name  string             `json:"name"`
	Items []EvidenceItemView `json:"items"`
}

// EvidenceItemView carries one observation with its formatted likelihood
// ratio and weight of evidence.
type EvidenceItemView struct {
	ID              string                `json:"id"`
	Summary         string                `json:"summary"`
	LikelihoodRatio string                `json:"likelihood_ratio"`
	WoE             string                `json:"woe"`
	Strength        prob.EvidenceStrength `json:"strength"`
}

// renderMarkdown converts a scenario briefing to HTML.
func renderMarkdown(source string) string {
	if source == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(source), p, renderer))
}

func buildSessionView(s *session.Session) SessionView {
	view := SessionView{
		ID:             s.ID,
		Proposition:    s.Scenario.Proposition,
		BriefingHTML:   renderMarkdown(s.Scenario.Briefing),
		Phase:          s.Phase.Current,
		Furthest:       s.Phase.Furthest,
		ActiveParadigm: s.ActiveParadigm,
		Predictions:    s.Predictions,
		Settled:        s.PredictionSummary != nil,
		Scoring:        s.PredictionSummary,
		UpdatedAt:      s.UpdatedAt,
		Ledger: LedgerView{
			Budget:    s.Ledger.Budget,
			TotalBet:  s.Ledger.TotalBet(),
			Remaining: s.Ledger.Remaining(),
			Rounds:    len(s.Ledger.History),
		},
	}

	for _, phase := range game.PhaseOrder {
		view.Phases = append(view.Phases, PhaseView{
			Phase:     phase,
			Navigable: s.Phase.Navigable(phase),
			Completed: s.Phase.IsCompleted(phase),
			Current:   phase == s.Phase.Current,
		})
	}

	selected := make(map[core.ParadigmID]bool, len(s.SelectedParadigms))
	for _, id := range s.SelectedParadigms {
		selected[id] = true
	}
	for _, paradigm := range s.Scenario.Paradigms {
		identity := persona.Resolve(paradigm)
		view.Paradigms = append(view.Paradigms, ParadigmView{
			ID:          paradigm.ID,
			Name:        paradigm.Name,
			Description: paradigm.Description,
			Icon:        identity.Icon,
			PersonaName: identity.Name,
			Selected:    selected[paradigm.ID],
			Active:      paradigm.ID == s.ActiveParadigm,
		})
	}

	showPosteriors := s.Phase.IsCompleted(game.PhaseResolution) || s.Phase.Current == game.PhaseResolution
	for _, h := range s.Scenario.Hypotheses {
		hv := HypothesisView{
			ID:    h.ID,
			Name:  h.Name,
			Prior: prob.FormatPercent(s.Scenario.Priors.Get(s.ActiveParadigm, h.ID)),
			Bet:   s.Ledger.Bets[h.ID],
		}
		if showPosteriors {
			hv.Posterior = prob.FormatPercent(s.Scenario.Posteriors.Get(s.ActiveParadigm, h.ID))
		}
		view.Hypotheses = append(view.Hypotheses, hv)
	}
	if view.Settled {
		view.Winner = s.WinningHypothesis()
	}

	for i := 0; i < s.Revealed && i < len(s.Scenario.Evidence); i++ {
		cluster := s.Scenario.Evidence[i]
		cv := ClusterView{ID: cluster.ID, Name: cluster.Name}
		for _, item := range cluster.Items {
			woe := prob.WeightOfEvidence(item.LikelihoodRatio)
			cv.Items = append(cv.Items, EvidenceItemView{
				ID:              item.ID,
				Summary:         item.Summary,
				LikelihoodRatio: prob.FormatLikelihoodRatio(item.LikelihoodRatio),
				WoE:             prob.FormatWoE(woe),
				Strength:        prob.ClassifyWoE(woe),
			})
		}
		view.Evidence = append(view.Evidence, cv)
	}

	return view
}

// LeaderboardEntryView is one ranked competitor with formatted numbers.
type LeaderboardEntryView struct {
	Rank     int             `json:"rank"`
	Name     string          `json:"name"`
	Icon     string          `json:"icon"`
	Paradigm core.ParadigmID `json:"paradigm,omitempty"`
	IsPlayer bool            `json:"is_player"`
	TotalBet int             `json:"total_bet"`
	Payoff   string          `json:"payoff"`
}

func buildLeaderboardView(entries []persona.LeaderboardEntry) []LeaderboardEntryView {
	views := make([]LeaderboardEntryView, 0, len(entries))
	for _, e := range entries {
		payoff := 0.0
		if e.Competitor.Payoff != nil {
			payoff = *e.Competitor.Payoff
		}
		views = append(views, LeaderboardEntryView{
			Rank:     e.Rank,
			Name:     e.Competitor.Persona.Name,
			Icon:     e.Competitor.Persona.Icon,
			Paradigm: e.Competitor.Paradigm,
			IsPlayer: e.Competitor.IsPlayer,
			TotalBet: e.Competitor.Bets.Total(),
			Payoff:   prob.FormatCredits(payoff),
		})
	}
	return views
}
