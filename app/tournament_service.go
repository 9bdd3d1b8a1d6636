package app

import (
	"context"
	"fmt"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/domain/ledger"
	"hypotourney/domain/persona"
	"hypotourney/domain/session"
	"hypotourney/internal"
	"hypotourney/internal/errors"
	"hypotourney/ports"
)

// TournamentService orchestrates tournament sessions: it loads scenarios,
// gates actions behind the phase machine, and persists session state after
// every mutation. The one-way scoring flow lives here: personas seeded at
// betting, evidence revealed in order, predictions scored and every
// competitor settled at resolution.
type TournamentService struct {
	sessions  ports.SessionRepository
	scenarios ports.ScenarioRepository
	log       *internal.Logger
}

// NewTournamentService creates a tournament service
func NewTournamentService(sessions ports.SessionRepository, scenarios ports.ScenarioRepository, log *internal.Logger) *TournamentService {
	return &TournamentService{
		sessions:  sessions,
		scenarios: scenarios,
		log:       log,
	}
}

// CreateSession loads a scenario and starts a fresh session at setup.
func (s *TournamentService) CreateSession(ctx context.Context, scenarioID core.ID) (*session.Session, error) {
	scenario, err := s.scenarios.Get(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	sess, err := session.New(scenario)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.log.Info("session %s created for scenario %s", sess.ID, scenarioID)
	return sess, nil
}

// GetSession retrieves a session by id.
func (s *TournamentService) GetSession(ctx context.Context, id core.SessionID) (*session.Session, error) {
	return s.sessions.Get(ctx, id)
}

// Navigate moves the participant to an already-reached phase. Jumping
// ahead of the furthest phase is rejected by the tracker.
func (s *TournamentService) Navigate(ctx context.Context, id core.SessionID, phase game.Phase) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.Phase.Navigate(phase); err != nil {
		return nil, errors.PhaseGated(err)
	}
	return sess, s.sessions.Save(ctx, sess)
}

// AdvancePhase completes the current phase and moves one step forward.
// Used by the setup, hypotheses, and priors pages, whose in-phase actions
// have no engine side effects.
func (s *TournamentService) AdvancePhase(ctx context.Context, id core.SessionID) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.Phase.Advance(); err != nil {
		return nil, errors.PhaseGated(err)
	}
	return sess, s.sessions.Save(ctx, sess)
}

// SelectParadigms records the chosen lenses during the priors phase.
func (s *TournamentService) SelectParadigms(ctx context.Context, id core.SessionID, selected []core.ParadigmID, active core.ParadigmID) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.SelectParadigms(selected, active); err != nil {
		return nil, err
	}
	return sess, s.sessions.Save(ctx, sess)
}

// PlaceBets records the initial bet vector during the betting phase,
// seeds the synthetic competitors, and advances to evidence.
func (s *TournamentService) PlaceBets(ctx context.Context, id core.SessionID, bets ledger.BetVector) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Phase.Current != game.PhaseBetting {
		return nil, errors.PhaseGated(fmt.Errorf("%w: place bets in %s", core.ErrPhaseOutOfOrder, sess.Phase.Current))
	}
	if err := sess.Ledger.PlaceInitialBets(bets); err != nil {
		return nil, errors.LedgerRejected(err)
	}

	sess.SeedCompetitors()
	if err := sess.Phase.Advance(); err != nil {
		return nil, err
	}

	s.log.Info("session %s: initial bets placed, %d credits", id, sess.Ledger.TotalBet())
	return sess, s.sessions.Save(ctx, sess)
}

// RaiseBet increases one hypothesis bet during the evidence phase.
func (s *TournamentService) RaiseBet(ctx context.Context, id core.SessionID, hypothesis core.HypothesisID, delta int) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Phase.Current != game.PhaseEvidence {
		return nil, errors.PhaseGated(fmt.Errorf("%w: raise in %s", core.ErrPhaseOutOfOrder, sess.Phase.Current))
	}
	if err := sess.Ledger.RaiseBet(hypothesis, delta); err != nil {
		return nil, errors.LedgerRejected(err)
	}
	return sess, s.sessions.Save(ctx, sess)
}

// RecordPrediction captures the participant's forecast for an upcoming
// evidence cluster.
func (s *TournamentService) RecordPrediction(ctx context.Context, id core.SessionID, cluster core.ClusterID, predicted core.HypothesisID) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.RecordPrediction(cluster, predicted); err != nil {
		return nil, err
	}
	return sess, s.sessions.Save(ctx, sess)
}

// RevealEvidence reveals the next cluster in order. When the last cluster
// is revealed the session advances to resolution.
func (s *TournamentService) RevealEvidence(ctx context.Context, id core.SessionID) (*game.EvidenceCluster, *session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sess.Phase.Current != game.PhaseEvidence {
		return nil, nil, errors.PhaseGated(fmt.Errorf("%w: reveal in %s", core.ErrPhaseOutOfOrder, sess.Phase.Current))
	}

	cluster := sess.RevealNext()
	if sess.AllRevealed() {
		if err := sess.Phase.Advance(); err != nil {
			return nil, nil, err
		}
	}
	return cluster, sess, s.sessions.Save(ctx, sess)
}

// Resolve settles every competitor against the finalized posteriors,
// scores predictions, and advances to report.
func (s *TournamentService) Resolve(ctx context.Context, id core.SessionID) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Phase.Current != game.PhaseResolution {
		return nil, errors.PhaseGated(fmt.Errorf("%w: resolve in %s", core.ErrPhaseOutOfOrder, sess.Phase.Current))
	}
	if err := sess.Settle(); err != nil {
		return nil, errors.PhaseGated(err)
	}
	if err := sess.Phase.Advance(); err != nil {
		return nil, err
	}

	s.log.Info("session %s: settled %d competitors, winner %s", id, len(sess.Competitors), sess.WinningHypothesis())
	return sess, s.sessions.Save(ctx, sess)
}

// Leaderboard returns the ranked competitors of a settled session.
func (s *TournamentService) Leaderboard(ctx context.Context, id core.SessionID) ([]persona.LeaderboardEntry, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Leaderboard()
}

// PlayAgain resets the session for another run of the same scenario.
func (s *TournamentService) PlayAgain(ctx context.Context, id core.SessionID) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.PlayAgain()
	return sess, s.sessions.Save(ctx, sess)
}

// EndSession tears the session down entirely; "new analysis".
func (s *TournamentService) EndSession(ctx context.Context, id core.SessionID) error {
	return s.sessions.Delete(ctx, id)
}
