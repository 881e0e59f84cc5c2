package wizard

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

// fakeGateway returns canned results per operation.
type fakeGateway struct {
	analysis    *types.JobAnalysis
	analysisErr error
	jobs        []types.Job
	searchErr   error
	pkg         *types.IntelligencePackage
	generateErr error
	headlines   []string
	headlineErr error
}

func (f *fakeGateway) AnalyzeJobDescription(context.Context, string) (*types.JobAnalysis, error) {
	return f.analysis, f.analysisErr
}

func (f *fakeGateway) SearchJobs(context.Context, string) ([]types.Job, error) {
	return f.jobs, f.searchErr
}

func (f *fakeGateway) GenerateIntelligencePackage(context.Context, *types.UserProfile, *types.JobAnalysis) (*types.IntelligencePackage, error) {
	return f.pkg, f.generateErr
}

func (f *fakeGateway) GenerateHeadlineAlternatives(context.Context, *types.UserProfile, *types.JobAnalysis) ([]string, error) {
	return f.headlines, f.headlineErr
}

// memStore is an in-memory profile.Store for engine tests.
type memStore struct {
	mu       sync.Mutex
	profiles map[string]*types.UserProfile
	loadErr  error
	saveErr  error
	saves    int
}

func newMemStore() *memStore {
	return &memStore{profiles: make(map[string]*types.UserProfile)}
}

func (m *memStore) Load(_ context.Context, userID string) (*types.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.profiles[userID].Clone(), nil
}

func (m *memStore) Save(_ context.Context, userID string, p *types.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.profiles[userID] = p.Clone()
	return nil
}

func TestEngineFirstLoginFlow(t *testing.T) {
	engine := NewEngine(&fakeGateway{}, newMemStore())

	session := engine.Dispatch(context.Background(), AuthChanged{Identity: testIdentity()})

	// No stored profile: the engine settles at profile setup with a seed.
	assert.Equal(t, StepProfileSetup, session.Step)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "Dana Okafor", session.Profile.FullName)
	assert.False(t, session.ProfileLoading)
}

func TestEngineReturningUserFlow(t *testing.T) {
	store := newMemStore()
	store.profiles["user-1"] = testProfile()
	engine := NewEngine(&fakeGateway{}, store)

	session := engine.Dispatch(context.Background(), AuthChanged{Identity: testIdentity()})

	assert.Equal(t, StepJobSearch, session.Step)
	assert.Equal(t, "Ten years in community programs.", session.Profile.CareerSummary)
}

func TestEngineProfileSavePersists(t *testing.T) {
	store := newMemStore()
	engine := NewEngine(&fakeGateway{}, store)
	engine.Dispatch(context.Background(), AuthChanged{Identity: testIdentity()})

	session := engine.Dispatch(context.Background(), ProfileSubmitted{Profile: testProfile()})

	assert.Equal(t, StepJobSearch, session.Step)
	assert.False(t, session.SaveInFlight)
	assert.Equal(t, 1, store.saves)
	assert.NotNil(t, store.profiles["user-1"])
}

func TestEngineProfileSaveFailureRollsBack(t *testing.T) {
	store := newMemStore()
	store.saveErr = fmt.Errorf("disk full")
	engine := NewEngine(&fakeGateway{}, store)
	engine.Dispatch(context.Background(), AuthChanged{Identity: testIdentity()})

	session := engine.Dispatch(context.Background(), ProfileSubmitted{Profile: testProfile()})

	assert.Equal(t, StepProfileSetup, session.Step)
	assert.NotEmpty(t, session.ErrorMessage)
	require.NotNil(t, session.Profile)
}

func TestEngineFullHappyPath(t *testing.T) {
	store := newMemStore()
	store.profiles["user-1"] = testProfile()
	gw := &fakeGateway{
		jobs:     []types.Job{{JobTitle: "Case Manager", CompanyName: "Anchor", JobDescription: "Full description."}},
		analysis: testAnalysis(),
		pkg:      testPackage(),
	}
	engine := NewEngine(gw, store)
	ctx := context.Background()

	engine.Dispatch(ctx, AuthChanged{Identity: testIdentity()})

	session := engine.Dispatch(ctx, SearchRequested{Query: "case manager"})
	require.Len(t, session.SearchResults, 1)

	session = engine.Dispatch(ctx, JobChosen{Description: session.SearchResults[0].JobDescription})
	assert.Equal(t, StepJobVerification, session.Step)

	session = engine.Dispatch(ctx, AnalysisConfirmed{})
	assert.Equal(t, StepTemplateSelection, session.Step)

	session = engine.Dispatch(ctx, TemplateChosen{ThemeID: "compact"})
	assert.Equal(t, StepFinalVerification, session.Step)

	session = engine.Dispatch(ctx, GenerationConfirmed{})
	assert.Equal(t, StepResults, session.Step)
	require.NotNil(t, session.Package)
	assert.Equal(t, "compact", session.Template)
	assert.False(t, session.AIInFlight)
}

func TestEngineGenerationFailureReturnsToFinalVerification(t *testing.T) {
	store := newMemStore()
	store.profiles["user-1"] = testProfile()
	gw := &fakeGateway{
		analysis:    testAnalysis(),
		generateErr: fmt.Errorf("model overloaded"),
	}
	engine := NewEngine(gw, store)
	ctx := context.Background()

	engine.Dispatch(ctx, AuthChanged{Identity: testIdentity()})
	engine.Dispatch(ctx, JobChosen{Description: "We are hiring..."})
	engine.Dispatch(ctx, AnalysisConfirmed{})
	engine.Dispatch(ctx, TemplateChosen{ThemeID: "classic"})

	session := engine.Dispatch(ctx, GenerationConfirmed{})

	assert.Equal(t, StepFinalVerification, session.Step)
	assert.NotEmpty(t, session.ErrorMessage)
	require.NotNil(t, session.Analysis)
	assert.Equal(t, "classic", session.Template)
}

func TestEngineSearchFailure(t *testing.T) {
	store := newMemStore()
	store.profiles["user-1"] = testProfile()
	engine := NewEngine(&fakeGateway{searchErr: fmt.Errorf("search backend down")}, store)
	ctx := context.Background()

	engine.Dispatch(ctx, AuthChanged{Identity: testIdentity()})
	session := engine.Dispatch(ctx, SearchRequested{Query: "case manager"})

	require.NotNil(t, session.SearchResults)
	assert.Empty(t, session.SearchResults)
	assert.NotEmpty(t, session.ErrorMessage)
}

func TestEngineSnapshotIsolation(t *testing.T) {
	store := newMemStore()
	store.profiles["user-1"] = testProfile()
	engine := NewEngine(&fakeGateway{}, store)
	engine.Dispatch(context.Background(), AuthChanged{Identity: testIdentity()})

	snap := engine.Snapshot()
	snap.Profile.FullName = "mutated"
	snap.Profile.Experience[0].JobTitle = "mutated"

	fresh := engine.Snapshot()
	assert.Equal(t, "Dana Okafor", fresh.Profile.FullName)
	assert.Equal(t, "Coordinator", fresh.Profile.Experience[0].JobTitle)
}

func TestEngineHeadlines(t *testing.T) {
	store := newMemStore()
	store.profiles["user-1"] = testProfile()
	engine := NewEngine(&fakeGateway{headlines: []string{"A", "B", "C"}}, store)
	ctx := context.Background()

	engine.Dispatch(ctx, AuthChanged{Identity: testIdentity()})
	session := engine.Dispatch(ctx, HeadlinesRequested{})

	assert.Equal(t, []string{"A", "B", "C"}, session.HeadlineIdeas)
}
