package app

import (
	"context"
	"fmt"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/internal"
	"hypotourney/ports"
)

// AnalysisService turns a proposition into a playable scenario. It submits
// one analysis job per paradigm, polls them concurrently, and assembles
// the returned priors, posteriors, and evidence into a Scenario the
// tournament can run on. All probability numbers come from upstream; this
// service only wires them together.
type AnalysisService struct {
	analysis  ports.AnalysisPort
	scenarios ports.ScenarioRepository
	log       *internal.Logger
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(analysis ports.AnalysisPort, scenarios ports.ScenarioRepository, log *internal.Logger) *AnalysisService {
	return &AnalysisService{
		analysis:  analysis,
		scenarios: scenarios,
		log:       log,
	}
}

// BuildScenarioRequest describes the scenario to assemble. Hypotheses
// are shared across paradigms; each paradigm gets its own analysis job.
type BuildScenarioRequest struct {
	Proposition string
	Briefing    string
	Paradigms   []game.Paradigm
	Hypotheses  []game.Hypothesis
	Scoring     *game.ScoringConfig
}

// BuildScenario runs the full analysis pipeline and persists the
// assembled scenario. Evidence clusters are taken from the first
// paradigm that reports any; priors and posteriors are kept per paradigm.
func (s *AnalysisService) BuildScenario(ctx context.Context, req BuildScenarioRequest) (*game.Scenario, error) {
	if req.Proposition == "" {
		return nil, fmt.Errorf("proposition is required")
	}
	if len(req.Paradigms) == 0 {
		return nil, fmt.Errorf("at least one paradigm is required")
	}

	handles := make([]ports.AnalysisHandle, 0, len(req.Paradigms))
	for _, p := range req.Paradigms {
		handle, err := s.analysis.Submit(ctx, req.Proposition, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to submit analysis for %s: %w", p.ID, err)
		}
		handles = append(handles, handle)
	}
	s.log.Info("submitted %d analysis jobs for %q", len(handles), req.Proposition)

	results, err := s.analysis.AwaitAll(ctx, handles)
	if err != nil {
		return nil, fmt.Errorf("analysis did not complete: %w", err)
	}

	scenario := &game.Scenario{
		ID:          core.NewID(),
		Proposition: req.Proposition,
		Briefing:    req.Briefing,
		Paradigms:   req.Paradigms,
		Hypotheses:  req.Hypotheses,
		Priors:      game.PriorSet{},
		Posteriors:  game.PriorSet{},
		Scoring:     game.DefaultScoring(),
	}
	if req.Scoring != nil {
		scenario.Scoring = *req.Scoring
	}

	for _, p := range req.Paradigms {
		result, ok := results[p.ID]
		if !ok || result == nil {
			return nil, fmt.Errorf("analysis returned no result for paradigm %s", p.ID)
		}
		scenario.Priors[p.ID] = result.Priors
		scenario.Posteriors[p.ID] = result.Posteriors
		if len(scenario.Evidence) == 0 && len(result.Evidence) > 0 {
			scenario.Evidence = result.Evidence
		}
	}

	for _, report := range scenario.Priors.CheckDistributions(scenario.Paradigms, scenario.HypothesisOrder()) {
		if !report.Valid {
			s.log.Warn("scenario %s: paradigm %s priors sum to %.3f", scenario.ID, report.Paradigm, report.Sum)
		}
	}

	if err := s.scenarios.Save(ctx, scenario); err != nil {
		return nil, fmt.Errorf("failed to save scenario: %w", err)
	}
	s.log.Info("scenario %s assembled: %d paradigms, %d hypotheses, %d evidence clusters",
		scenario.ID, len(scenario.Paradigms), len(scenario.Hypotheses), len(scenario.Evidence))
	return scenario, nil
}

// ListScenarios returns the stored scenarios, newest first.
func (s *AnalysisService) ListScenarios(ctx context.Context, limit int) ([]*game.Scenario, error) {
	return s.scenarios.List(ctx, limit)
}
