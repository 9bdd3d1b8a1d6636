package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hypotourney/adapters/memory"
	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/internal"
	"hypotourney/ports"
)

type mockAnalysisPort struct {
	mock.Mock
}

func (m *mockAnalysisPort) Submit(ctx context.Context, proposition string, paradigm core.ParadigmID) (ports.AnalysisHandle, error) {
	args := m.Called(ctx, proposition, paradigm)
	return args.Get(0).(ports.AnalysisHandle), args.Error(1)
}

func (m *mockAnalysisPort) Status(ctx context.Context, handle ports.AnalysisHandle) (ports.AnalysisStatus, error) {
	args := m.Called(ctx, handle)
	return args.Get(0).(ports.AnalysisStatus), args.Error(1)
}

func (m *mockAnalysisPort) Result(ctx context.Context, handle ports.AnalysisHandle) (*ports.AnalysisResult, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.AnalysisResult), args.Error(1)
}

func (m *mockAnalysisPort) Await(ctx context.Context, handle ports.AnalysisHandle) (*ports.AnalysisResult, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.AnalysisResult), args.Error(1)
}

func (m *mockAnalysisPort) AwaitAll(ctx context.Context, handles []ports.AnalysisHandle) (map[core.ParadigmID]*ports.AnalysisResult, error) {
	args := m.Called(ctx, handles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[core.ParadigmID]*ports.AnalysisResult), args.Error(1)
}

func buildRequest() BuildScenarioRequest {
	return BuildScenarioRequest{
		Proposition: "The reactor tripped because of a sensor fault",
		Paradigms: []game.Paradigm{
			{ID: "K1", Name: "Instrumentation"},
			{ID: "K2", Name: "Process safety"},
		},
		Hypotheses: []game.Hypothesis{
			{ID: "H1", Name: "Sensor fault"},
			{ID: "H2", Name: "Operator error"},
		},
	}
}

func TestBuildScenario(t *testing.T) {
	port := new(mockAnalysisPort)
	scenarios := memory.NewScenarioRepository()
	svc := NewAnalysisService(port, scenarios, internal.NewDefaultLogger())
	req := buildRequest()

	port.On("Submit", mock.Anything, req.Proposition, core.ParadigmID("K1")).
		Return(ports.AnalysisHandle{ID: "job-1", Paradigm: "K1"}, nil)
	port.On("Submit", mock.Anything, req.Proposition, core.ParadigmID("K2")).
		Return(ports.AnalysisHandle{ID: "job-2", Paradigm: "K2"}, nil)
	port.On("AwaitAll", mock.Anything, mock.Anything).Return(map[core.ParadigmID]*ports.AnalysisResult{
		"K1": {
			Paradigm:   "K1",
			Priors:     game.PriorVector{"H1": 0.7, "H2": 0.3},
			Posteriors: game.PriorVector{"H1": 0.9, "H2": 0.1},
			Evidence: []game.EvidenceCluster{
				{ID: "C1", Name: "Calibration records", Actual: "H1"},
			},
		},
		"K2": {
			Paradigm:   "K2",
			Priors:     game.PriorVector{"H1": 0.5, "H2": 0.5},
			Posteriors: game.PriorVector{"H1": 0.6, "H2": 0.4},
		},
	}, nil)

	scenario, err := svc.BuildScenario(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, scenario.ID)
	assert.Equal(t, 0.7, scenario.Priors.Raw("K1", "H1"))
	assert.Equal(t, 0.4, scenario.Posteriors.Raw("K2", "H2"))
	require.Len(t, scenario.Evidence, 1)
	assert.Equal(t, game.DefaultScoring(), scenario.Scoring)

	stored, err := scenarios.Get(context.Background(), scenario.ID)
	require.NoError(t, err)
	assert.Equal(t, scenario.Proposition, stored.Proposition)
	port.AssertExpectations(t)
}

func TestBuildScenario_Validation(t *testing.T) {
	svc := NewAnalysisService(new(mockAnalysisPort), memory.NewScenarioRepository(), internal.NewDefaultLogger())

	_, err := svc.BuildScenario(context.Background(), BuildScenarioRequest{})
	assert.Error(t, err)

	_, err = svc.BuildScenario(context.Background(), BuildScenarioRequest{Proposition: "something happened"})
	assert.Error(t, err, "paradigms are required")
}

func TestBuildScenario_AnalysisFailure(t *testing.T) {
	port := new(mockAnalysisPort)
	svc := NewAnalysisService(port, memory.NewScenarioRepository(), internal.NewDefaultLogger())
	req := buildRequest()

	port.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return(ports.AnalysisHandle{ID: "job-1", Paradigm: "K1"}, nil)
	port.On("AwaitAll", mock.Anything, mock.Anything).
		Return(nil, errors.New("analysis failed"))

	_, err := svc.BuildScenario(context.Background(), req)
	assert.ErrorContains(t, err, "analysis did not complete")
}

func TestBuildScenario_MissingParadigmResult(t *testing.T) {
	port := new(mockAnalysisPort)
	svc := NewAnalysisService(port, memory.NewScenarioRepository(), internal.NewDefaultLogger())
	req := buildRequest()

	port.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return(ports.AnalysisHandle{ID: "job-1", Paradigm: "K1"}, nil)
	port.On("AwaitAll", mock.Anything, mock.Anything).Return(map[core.ParadigmID]*ports.AnalysisResult{
		"K1": {Paradigm: "K1", Priors: game.PriorVector{"H1": 1}},
	}, nil)

	_, err := svc.BuildScenario(context.Background(), req)
	assert.ErrorContains(t, err, "no result for paradigm K2")
}
