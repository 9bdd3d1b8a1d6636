package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotourney/adapters/memory"
	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/domain/ledger"
	"hypotourney/domain/session"
	"hypotourney/internal"
	apperrors "hypotourney/internal/errors"
)

func testScenario() *game.Scenario {
	return &game.Scenario{
		ID:          "scn-app",
		Proposition: "The outage was caused by a bad deploy",
		Paradigms: []game.Paradigm{
			{ID: "K1", Name: "Operations"},
			{ID: "K2", Name: "Security"},
		},
		Hypotheses: []game.Hypothesis{
			{ID: "H1", Name: "Bad deploy"},
			{ID: "H2", Name: "Hardware failure"},
		},
		Evidence: []game.EvidenceCluster{
			{ID: "C1", Name: "Deploy timeline", Actual: "H1"},
			{ID: "C2", Name: "Disk telemetry", Actual: "H1"},
		},
		Priors: game.PriorSet{
			"K1": {"H1": 0.6, "H2": 0.4},
			"K2": {"H1": 0.4, "H2": 0.6},
		},
		Posteriors: game.PriorSet{
			"K1": {"H1": 0.8, "H2": 0.2},
			"K2": {"H1": 0.6, "H2": 0.4},
		},
		Scoring: game.DefaultScoring(),
	}
}

func newTestService(t *testing.T) (*TournamentService, core.ID) {
	t.Helper()
	scenarios := memory.NewScenarioRepository()
	scenario := testScenario()
	require.NoError(t, scenarios.Save(context.Background(), scenario))
	svc := NewTournamentService(memory.NewSessionRepository(), scenarios, internal.NewDefaultLogger())
	return svc, scenario.ID
}

func advanceTo(t *testing.T, svc *TournamentService, id core.SessionID, target game.Phase) *session.Session {
	t.Helper()
	var (
		sess *session.Session
		err  error
	)
	for {
		sess, err = svc.GetSession(context.Background(), id)
		require.NoError(t, err)
		if sess.Phase.Current == target {
			return sess
		}
		sess, err = svc.AdvancePhase(context.Background(), id)
		require.NoError(t, err)
	}
}

func TestCreateSession(t *testing.T) {
	svc, scenarioID := newTestService(t)

	sess, err := svc.CreateSession(context.Background(), scenarioID)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseSetup, sess.Phase.Current)
	assert.Equal(t, 100, sess.Ledger.Budget)

	stored, err := svc.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, stored.ID)
}

func TestCreateSession_UnknownScenario(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateSession(context.Background(), "missing")
	assert.True(t, core.IsNotFoundError(err), "expected not-found, got %v", err)
}

func TestPlaceBets_RequiresBettingPhase(t *testing.T) {
	svc, scenarioID := newTestService(t)
	sess, err := svc.CreateSession(context.Background(), scenarioID)
	require.NoError(t, err)

	_, err = svc.PlaceBets(context.Background(), sess.ID, ledger.BetVector{"H1": 50, "H2": 50})
	assert.ErrorIs(t, err, core.ErrPhaseOutOfOrder)
}

func TestRejectionCodes(t *testing.T) {
	svc, scenarioID := newTestService(t)
	created, err := svc.CreateSession(context.Background(), scenarioID)
	require.NoError(t, err)

	_, err = svc.PlaceBets(context.Background(), created.ID, ledger.BetVector{"H1": 10})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePhaseGated, apperrors.GetCode(err))

	advanceTo(t, svc, created.ID, game.PhaseBetting)
	_, err = svc.PlaceBets(context.Background(), created.ID, ledger.BetVector{"H1": 500})
	require.ErrorIs(t, err, core.ErrBudgetExceeded)
	assert.Equal(t, apperrors.CodeLedgerRejected, apperrors.GetCode(err))

	_, err = svc.Navigate(context.Background(), created.ID, game.PhaseDebrief)
	require.ErrorIs(t, err, core.ErrPhaseNotNavigable)
	assert.Equal(t, apperrors.CodePhaseGated, apperrors.GetCode(err))
}

func TestFullTournamentFlow(t *testing.T) {
	svc, scenarioID := newTestService(t)
	created, err := svc.CreateSession(context.Background(), scenarioID)
	require.NoError(t, err)
	id := created.ID

	advanceTo(t, svc, id, game.PhaseBetting)

	sess, err := svc.PlaceBets(context.Background(), id, ledger.BetVector{"H1": 60, "H2": 40})
	require.NoError(t, err)
	assert.Equal(t, game.PhaseEvidence, sess.Phase.Current)
	assert.Len(t, sess.Competitors, 3, "player plus one persona per paradigm")

	sess, err = svc.RaiseBet(context.Background(), id, "H1", 0)
	assert.ErrorIs(t, err, core.ErrNonPositiveRaise)

	_, err = svc.RecordPrediction(context.Background(), id, "C1", "H1")
	require.NoError(t, err)

	cluster, sess, err := svc.RevealEvidence(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, cluster)
	assert.Equal(t, core.ClusterID("C1"), cluster.ID)
	assert.Equal(t, game.PhaseEvidence, sess.Phase.Current)

	_, sess, err = svc.RevealEvidence(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseResolution, sess.Phase.Current, "last reveal advances to resolution")

	sess, err = svc.Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseReport, sess.Phase.Current)
	assert.Equal(t, core.HypothesisID("H1"), sess.WinningHypothesis())

	// navigating back cannot trigger a second settlement
	_, err = svc.Navigate(context.Background(), id, game.PhaseResolution)
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), id)
	assert.ErrorIs(t, err, core.ErrAlreadySettled)

	entries, err := svc.Leaderboard(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	for i := 1; i < len(entries); i++ {
		prev := entries[i-1].Competitor.Payoff
		cur := entries[i].Competitor.Payoff
		require.NotNil(t, prev)
		require.NotNil(t, cur)
		assert.GreaterOrEqual(t, *prev, *cur)
	}
}

func TestResolve_RequiresAllEvidence(t *testing.T) {
	svc, scenarioID := newTestService(t)
	created, err := svc.CreateSession(context.Background(), scenarioID)
	require.NoError(t, err)

	advanceTo(t, svc, created.ID, game.PhaseBetting)
	_, err = svc.PlaceBets(context.Background(), created.ID, ledger.BetVector{"H1": 100})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), created.ID)
	assert.ErrorIs(t, err, core.ErrPhaseOutOfOrder, "resolve before all reveals")
}

func TestNavigate_Gating(t *testing.T) {
	svc, scenarioID := newTestService(t)
	created, err := svc.CreateSession(context.Background(), scenarioID)
	require.NoError(t, err)

	_, err = svc.Navigate(context.Background(), created.ID, game.PhaseEvidence)
	assert.ErrorIs(t, err, core.ErrPhaseNotNavigable)

	advanceTo(t, svc, created.ID, game.PhasePriors)
	sess, err := svc.Navigate(context.Background(), created.ID, game.PhaseSetup)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseSetup, sess.Phase.Current)

	sess, err = svc.Navigate(context.Background(), created.ID, game.PhasePriors)
	require.NoError(t, err)
	assert.Equal(t, game.PhasePriors, sess.Phase.Current)
}

func TestPlayAgain(t *testing.T) {
	svc, scenarioID := newTestService(t)
	created, err := svc.CreateSession(context.Background(), scenarioID)
	require.NoError(t, err)
	id := created.ID

	advanceTo(t, svc, id, game.PhaseBetting)
	_, err = svc.PlaceBets(context.Background(), id, ledger.BetVector{"H1": 70, "H2": 30})
	require.NoError(t, err)
	_, _, err = svc.RevealEvidence(context.Background(), id)
	require.NoError(t, err)
	_, _, err = svc.RevealEvidence(context.Background(), id)
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), id)
	require.NoError(t, err)

	sess, err := svc.PlayAgain(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseSetup, sess.Phase.Current)
	assert.False(t, sess.Ledger.HasInitialBets())
	assert.Empty(t, sess.Competitors)
}

func TestEndSession(t *testing.T) {
	svc, scenarioID := newTestService(t)
	created, err := svc.CreateSession(context.Background(), scenarioID)
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(context.Background(), created.ID))
	_, err = svc.GetSession(context.Background(), created.ID)
	assert.True(t, core.IsNotFoundError(err))
}
