package game

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/floats"

	"hypotourney/domain/core"
	"hypotourney/domain/prob"
)

// PriorVector maps hypothesis ids to probabilities for one paradigm.
type PriorVector map[core.HypothesisID]float64

// PriorSet maps paradigm ids to their prior (or posterior) vector.
// This is the only probability shape the engine ever sees: upstream
// payloads sometimes carry bare numbers and sometimes objects with a
// probability field, and both are normalized here at the decode boundary.
type PriorSet map[core.ParadigmID]PriorVector

// Get returns the probability for a hypothesis under a paradigm, clamped
// into the engine's working range. Absent entries default to 0 before
// clamping, so a missing hypothesis reads as the probability floor.
func (ps PriorSet) Get(paradigm core.ParadigmID, hypothesis core.HypothesisID) float64 {
	return prob.ClampProbability(ps.Raw(paradigm, hypothesis))
}

// Raw returns the stored probability without clamping; absent entries are 0.
func (ps PriorSet) Raw(paradigm core.ParadigmID, hypothesis core.HypothesisID) float64 {
	if ps == nil {
		return 0
	}
	vector, ok := ps[paradigm]
	if !ok {
		return 0
	}
	return vector[hypothesis]
}

// priorEntry matches the object form some analysis payloads use for a
// single probability.
type priorEntry struct {
	Probability float64 `json:"probability"`
}

// UnmarshalJSON accepts both shapes the analysis service emits per entry:
// a bare number, or an object carrying a probability field. The canonical
// map is all the math layer ever consumes.
func (pv *PriorVector) UnmarshalJSON(data []byte) error {
	var raw map[core.HypothesisID]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(PriorVector, len(raw))
	for id, msg := range raw {
		var p float64
		if err := json.Unmarshal(msg, &p); err == nil {
			out[id] = p
			continue
		}
		var entry priorEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			return core.NewValidationError("prior."+id.String(), "expected number or {probability} object")
		}
		out[id] = entry.Probability
	}
	*pv = out
	return nil
}

// DistributionReport describes how close one paradigm's vector is to a
// valid probability distribution. The engine tolerates violations on read;
// this report only feeds the debrief.
type DistributionReport struct {
	Paradigm core.ParadigmID `json:"paradigm"`
	Sum      float64         `json:"sum"`
	Valid    bool            `json:"valid"`
}

// distributionTolerance is the allowed drift of a vector sum from 1.
const distributionTolerance = 0.01

// CheckDistributions reports, per paradigm in the given order, whether the
// prior vector over the given hypotheses sums to approximately 1.
func (ps PriorSet) CheckDistributions(paradigms []Paradigm, order []core.HypothesisID) []DistributionReport {
	reports := make([]DistributionReport, 0, len(paradigms))
	for _, paradigm := range paradigms {
		values := make([]float64, 0, len(order))
		for _, h := range order {
			values = append(values, ps.Raw(paradigm.ID, h))
		}
		sum := floats.Sum(values)
		reports = append(reports, DistributionReport{
			Paradigm: paradigm.ID,
			Sum:      sum,
			Valid:    math.Abs(sum-1) <= distributionTolerance,
		})
	}
	return reports
}
