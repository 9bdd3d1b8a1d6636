package ui

import (
	"encoding/json"
	"errors"
	"net/http"

	"hypotourney/domain/core"
	apperrors "hypotourney/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps domain errors onto HTTP statuses. Phase gating and
// ledger rejections are client errors; a session whose scenario vanished
// sends the participant back to setup with a 409.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrScenarioNotLoaded):
		respondJSON(w, http.StatusConflict, map[string]string{"error": err.Error(), "redirect": "setup"})
		return
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrPhaseNotNavigable), errors.Is(err, core.ErrPhaseOutOfOrder),
		errors.Is(err, core.ErrAlreadySettled), errors.Is(err, core.ErrNotSettled):
		status = http.StatusConflict
	case core.IsLedgerViolation(err):
		status = http.StatusUnprocessableEntity
	}

	payload := map[string]string{"error": err.Error()}
	if apperrors.IsAppError(err) {
		payload["code"] = apperrors.GetCode(err)
	}
	respondJSON(w, status, payload)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}
