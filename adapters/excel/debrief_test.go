package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hypotourney/domain/game"
	"hypotourney/domain/ledger"
	"hypotourney/domain/session"
)

func settledSession(t *testing.T) *session.Session {
	t.Helper()
	scenario := &game.Scenario{
		ID:          "scn-1",
		Proposition: "test proposition",
		Paradigms:   []game.Paradigm{{ID: "K1", Name: "One"}, {ID: "K2", Name: "Two"}},
		Hypotheses:  []game.Hypothesis{{ID: "H1", Name: "A"}, {ID: "H2", Name: "B"}},
		Evidence: []game.EvidenceCluster{
			{ID: "C1", Name: "Cluster one", Actual: "H1"},
		},
		Priors: game.PriorSet{
			"K1": {"H1": 0.4, "H2": 0.6},
			"K2": {"H1": 0.7, "H2": 0.3},
		},
		Posteriors: game.PriorSet{
			"K1": {"H1": 0.8, "H2": 0.2},
			"K2": {"H1": 0.6, "H2": 0.4},
		},
		Scoring: game.DefaultScoring(),
	}

	s, err := session.New(scenario)
	require.NoError(t, err)
	require.NoError(t, s.Ledger.PlaceInitialBets(ledger.BetVector{"H1": 50, "H2": 50}))
	s.SeedCompetitors()
	require.NoError(t, s.RecordPrediction("C1", "H1"))
	s.RevealAll()
	require.NoError(t, s.Settle())
	return s
}

func TestDebriefWriter_Write(t *testing.T) {
	s := settledSession(t)
	path := filepath.Join(t.TempDir(), "debrief.xlsx")

	writer := NewDebriefWriter()
	require.NoError(t, writer.Write(s, path))

	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Leaderboard")
	assert.Contains(t, sheets, "Predictions")
	assert.Contains(t, sheets, "Statistics")

	rows, err := file.GetRows("Leaderboard")
	require.NoError(t, err)
	// header + player + one persona per paradigm
	assert.Len(t, rows, 4)
	assert.Equal(t, "Rank", rows[0][0])

	predictions, err := file.GetRows("Predictions")
	require.NoError(t, err)
	assert.Equal(t, "Cluster one", predictions[1][0])
}

func TestDebriefWriter_RequiresSettledSession(t *testing.T) {
	scenario := &game.Scenario{
		ID:         "scn-2",
		Paradigms:  []game.Paradigm{{ID: "K1", Name: "One"}},
		Hypotheses: []game.Hypothesis{{ID: "H1", Name: "A"}},
		Priors:     game.PriorSet{"K1": {"H1": 1}},
		Scoring:    game.DefaultScoring(),
	}
	s, err := session.New(scenario)
	require.NoError(t, err)

	writer := NewDebriefWriter()
	err = writer.Write(s, filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
