// Package score evaluates the participant's per-cluster predictions once
// all evidence has been revealed.
package score

import (
	"hypotourney/domain/core"
	"hypotourney/domain/game"
)

// PredictionResult records the outcome of one cluster prediction.
type PredictionResult struct {
	ClusterID   core.ClusterID    `json:"cluster_id"`
	ClusterName string            `json:"cluster_name"`
	Predicted   core.HypothesisID `json:"predicted"`
	Actual      core.HypothesisID `json:"actual"`
	Correct     bool              `json:"correct"`
	Points      float64           `json:"points"`
}

// Summary aggregates prediction results for the report phase.
type Summary struct {
	Results      []PredictionResult `json:"results"`
	CorrectCount int                `json:"correct_count"`
	TotalBonus   float64            `json:"total_bonus"`
}

// ScorePredictions evaluates every cluster that has both a recorded actual
// hypothesis and a captured prediction. Bonus magnitudes come from the
// scenario's scoring config, never from here. Pure and idempotent:
// recomputation with the same inputs yields identical results, so callers
// may safely re-invoke it without double counting.
func ScorePredictions(clusters []game.EvidenceCluster, predictions map[core.ClusterID]core.HypothesisID, cfg game.ScoringConfig) Summary {
	summary := Summary{Results: make([]PredictionResult, 0, len(clusters))}

	for _, cluster := range clusters {
		if cluster.Actual == "" {
			continue
		}
		predicted, ok := predictions[cluster.ID]
		if !ok {
			continue
		}

		result := PredictionResult{
			ClusterID:   cluster.ID,
			ClusterName: cluster.Name,
			Predicted:   predicted,
			Actual:      cluster.Actual,
			Correct:     predicted == cluster.Actual,
		}
		if result.Correct {
			result.Points = cfg.CorrectBonus
			summary.CorrectCount++
		} else {
			result.Points = cfg.IncorrectCost
		}

		summary.TotalBonus += result.Points
		summary.Results = append(summary.Results, result)
	}

	return summary
}
