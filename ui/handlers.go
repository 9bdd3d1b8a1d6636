package ui

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"hypotourney/app"
	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/domain/ledger"
)

func sessionID(r *http.Request) core.SessionID {
	return core.SessionID(chi.URLParam(r, "id"))
}

// handleBuildScenario runs the analysis pipeline for a new proposition
func (a *App) handleBuildScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Proposition string            `json:"proposition"`
		Briefing    string            `json:"briefing"`
		Paradigms   []game.Paradigm   `json:"paradigms"`
		Hypotheses  []game.Hypothesis `json:"hypotheses"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	scenario, err := a.analysis.BuildScenario(r.Context(), app.BuildScenarioRequest{
		Proposition: req.Proposition,
		Briefing:    req.Briefing,
		Paradigms:   req.Paradigms,
		Hypotheses:  req.Hypotheses,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, scenario)
}

// handleListScenarios returns recently assembled scenarios
func (a *App) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := a.analysis.ListScenarios(r.Context(), 20)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, scenarios)
}

// handleCreateSession starts a session for a stored scenario
func (a *App) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID core.ID `json:"scenario_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := a.tournaments.CreateSession(r.Context(), req.ScenarioID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, buildSessionView(sess))
}

func (a *App) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := a.tournaments.GetSession(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

func (a *App) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := a.tournaments.EndSession(r.Context(), sessionID(r)); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNavigate moves to an already-reached phase
func (a *App) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phase string `json:"phase"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	phase, err := game.ParsePhase(req.Phase)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sess, err := a.tournaments.Navigate(r.Context(), sessionID(r), phase)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

// handleAdvance completes the current phase
func (a *App) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, err := a.tournaments.AdvancePhase(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

func (a *App) handleSelectParadigms(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selected []core.ParadigmID `json:"selected"`
		Active   core.ParadigmID   `json:"active"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := a.tournaments.SelectParadigms(r.Context(), sessionID(r), req.Selected, req.Active)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

// handlePlaceBets records the initial bet vector
func (a *App) handlePlaceBets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bets ledger.BetVector `json:"bets"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := a.tournaments.PlaceBets(r.Context(), sessionID(r), req.Bets)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

// handleRaiseBet increases one hypothesis bet mid-game
func (a *App) handleRaiseBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hypothesis core.HypothesisID `json:"hypothesis"`
		Amount     int               `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := a.tournaments.RaiseBet(r.Context(), sessionID(r), req.Hypothesis, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

func (a *App) handleRecordPrediction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cluster    core.ClusterID    `json:"cluster"`
		Hypothesis core.HypothesisID `json:"hypothesis"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := a.tournaments.RecordPrediction(r.Context(), sessionID(r), req.Cluster, req.Hypothesis)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

// handleRevealEvidence reveals the next cluster in order
func (a *App) handleRevealEvidence(w http.ResponseWriter, r *http.Request) {
	_, sess, err := a.tournaments.RevealEvidence(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

// handleResolve settles the tournament
func (a *App) handleResolve(w http.ResponseWriter, r *http.Request) {
	sess, err := a.tournaments.Resolve(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

func (a *App) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := a.tournaments.Leaderboard(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildLeaderboardView(entries))
}

func (a *App) handlePlayAgain(w http.ResponseWriter, r *http.Request) {
	sess, err := a.tournaments.PlayAgain(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildSessionView(sess))
}

// handleDebriefExport writes the session debrief workbook and serves it
func (a *App) handleDebriefExport(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	sess, err := a.tournaments.GetSession(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	path := filepath.Join(a.exportDir, fmt.Sprintf("debrief-%s.xlsx", id))
	if err := a.debrief.Write(sess, path); err != nil {
		respondError(w, err)
		return
	}
	a.log.Info("debrief for session %s written to %s", id, path)

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}
