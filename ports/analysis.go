package ports

import (
	"context"

	"hypotourney/domain/core"
	"hypotourney/domain/game"
)

// AnalysisStatus is the lifecycle state reported by the analysis service.
type AnalysisStatus string

const (
	AnalysisPending  AnalysisStatus = "pending"
	AnalysisRunning  AnalysisStatus = "running"
	AnalysisComplete AnalysisStatus = "complete"
	AnalysisFailed   AnalysisStatus = "failed"
)

// AnalysisHandle identifies a submitted analysis job.
type AnalysisHandle struct {
	ID       string
	Paradigm core.ParadigmID
}

// AnalysisResult is the resolved payload of one paradigm's analysis:
// priors, posteriors, and evidence with already-computed likelihood
// ratios. The engine consumes these numbers; it never produces them.
type AnalysisResult struct {
	Paradigm   core.ParadigmID        `json:"paradigm"`
	Priors     game.PriorVector       `json:"priors"`
	Posteriors game.PriorVector       `json:"posteriors"`
	Evidence   []game.EvidenceCluster `json:"evidence,omitempty"`
}

// AnalysisPort is the client for the external analysis service. Polling
// for completion is bounded by the implementation (fixed interval, max
// attempts); cancelling ctx stops retrying.
type AnalysisPort interface {
	// Submit starts an analysis of the proposition under one paradigm
	Submit(ctx context.Context, proposition string, paradigm core.ParadigmID) (AnalysisHandle, error)

	// Status reports the current lifecycle state of a job
	Status(ctx context.Context, handle AnalysisHandle) (AnalysisStatus, error)

	// Result fetches the resolved payload of a completed job
	Result(ctx context.Context, handle AnalysisHandle) (*AnalysisResult, error)

	// Await polls a job until completion, failure, or attempt exhaustion
	Await(ctx context.Context, handle AnalysisHandle) (*AnalysisResult, error)

	// AwaitAll polls several jobs concurrently; any failure fails the lot
	AwaitAll(ctx context.Context, handles []AnalysisHandle) (map[core.ParadigmID]*AnalysisResult, error)
}
