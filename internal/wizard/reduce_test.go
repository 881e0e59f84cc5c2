package wizard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

func testIdentity() *Identity {
	return &Identity{UserID: "user-1", DisplayName: "Dana Okafor", Email: "dana@example.com"}
}

func testProfile() *types.UserProfile {
	p := types.SeedProfile("Dana Okafor", "dana@example.com")
	p.CareerSummary = "Ten years in community programs."
	p.Experience = []types.Experience{{JobTitle: "Coordinator", StartDate: "2018", EndDate: "Present"}}
	return p
}

func testAnalysis() *types.JobAnalysis {
	return &types.JobAnalysis{JobTitle: "Case Manager", CompanyName: "Anchor Services"}
}

func testPackage() *types.IntelligencePackage {
	return &types.IntelligencePackage{
		TailoredResume:      *testProfile(),
		HeadlineSuggestions: []string{"Headline A", "Headline B", "Headline C"},
		CoverLetter:         "Dear Hiring Manager...",
		KSCResponses: []types.KSCResponse{
			{Criteria: "Teamwork", Response: "..."},
			{Criteria: "Safety", Response: "..."},
			{Criteria: "Communication", Response: "..."},
		},
	}
}

// signedInSession walks a fresh session through sign-in and profile load.
func signedInSession(t *testing.T) Session {
	t.Helper()
	s, effects := Reduce(NewSession(), AuthChanged{Identity: testIdentity()})
	require.Len(t, effects, 1)
	load, ok := effects[0].(LoadProfile)
	require.True(t, ok)
	s, effects = Reduce(s, ProfileLoadSettled{Gen: load.Gen, Profile: testProfile()})
	require.Empty(t, effects)
	require.Equal(t, StepJobSearch, s.Step)
	return s
}

func TestAuthChangedSignIn(t *testing.T) {
	s, effects := Reduce(NewSession(), AuthChanged{Identity: testIdentity()})

	assert.True(t, s.ProfileLoading)
	require.Len(t, effects, 1)
	load, ok := effects[0].(LoadProfile)
	require.True(t, ok)
	assert.Equal(t, "user-1", load.UserID)
	assert.Equal(t, s.Generation, load.Gen)
}

func TestAuthChangedSignOutClearsEverything(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, AuthChanged{Identity: nil})

	assert.Empty(t, effects)
	assert.Equal(t, StepUnauthenticated, s.Step)
	assert.Nil(t, s.Identity)
	assert.Nil(t, s.Profile)
}

func TestProfileLoadFirstLoginSeedsProfile(t *testing.T) {
	s, effects := Reduce(NewSession(), AuthChanged{Identity: testIdentity()})
	load := effects[0].(LoadProfile)

	s, _ = Reduce(s, ProfileLoadSettled{Gen: load.Gen, Profile: nil})

	assert.Equal(t, StepProfileSetup, s.Step)
	require.NotNil(t, s.Profile)
	assert.Equal(t, "Dana Okafor", s.Profile.FullName)
	assert.Equal(t, "dana@example.com", s.Profile.Email)
	assert.False(t, s.ProfileLoading)
}

func TestProfileLoadErrorStaysPut(t *testing.T) {
	s, effects := Reduce(NewSession(), AuthChanged{Identity: testIdentity()})
	load := effects[0].(LoadProfile)

	s, _ = Reduce(s, ProfileLoadSettled{Gen: load.Gen, Err: fmt.Errorf("disk gone")})

	assert.Equal(t, StepUnauthenticated, s.Step)
	assert.NotEmpty(t, s.ErrorMessage)
	assert.False(t, s.ProfileLoading)
}

func TestProfileLoadStaleGenerationDiscarded(t *testing.T) {
	s, effects := Reduce(NewSession(), AuthChanged{Identity: testIdentity()})
	load := effects[0].(LoadProfile)

	before := s
	s, _ = Reduce(s, ProfileLoadSettled{Gen: load.Gen - 1, Profile: testProfile()})

	assert.Equal(t, before, s)
}

func TestProfileSubmittedOptimistic(t *testing.T) {
	s, effects := Reduce(NewSession(), AuthChanged{Identity: testIdentity()})
	load := effects[0].(LoadProfile)
	s, _ = Reduce(s, ProfileLoadSettled{Gen: load.Gen, Profile: nil})

	edited := testProfile()
	s, effects = Reduce(s, ProfileSubmitted{Profile: edited})

	// Advances immediately, before the save settles.
	assert.Equal(t, StepJobSearch, s.Step)
	assert.True(t, s.SaveInFlight)
	require.Len(t, effects, 1)
	save, ok := effects[0].(SaveProfile)
	require.True(t, ok)
	assert.Equal(t, "user-1", save.UserID)

	// The machine holds a copy, not the caller's pointer.
	edited.FullName = "mutated"
	assert.Equal(t, "Dana Okafor", s.Profile.FullName)
}

func TestProfileSaveFailureRollsBack(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, ProfileSubmitted{Profile: testProfile()})
	save := effects[0].(SaveProfile)

	s, _ = Reduce(s, ProfileSaveSettled{Gen: save.Gen, Err: fmt.Errorf("write failed")})

	assert.Equal(t, StepProfileSetup, s.Step)
	assert.False(t, s.SaveInFlight)
	assert.NotEmpty(t, s.ErrorMessage)
	// The edited profile stays in memory for retry.
	require.NotNil(t, s.Profile)
	assert.Equal(t, "Dana Okafor", s.Profile.FullName)
}

func TestProfileSaveSuccessIsQuiet(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, ProfileSubmitted{Profile: testProfile()})
	save := effects[0].(SaveProfile)

	s, _ = Reduce(s, ProfileSaveSettled{Gen: save.Gen})

	assert.Equal(t, StepJobSearch, s.Step)
	assert.False(t, s.SaveInFlight)
	assert.Empty(t, s.ErrorMessage)
}

func TestSearchFlow(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, SearchRequested{Query: "support worker"})

	assert.True(t, s.Searching)
	assert.True(t, s.AIInFlight)
	require.Len(t, effects, 1)
	search := effects[0].(SearchJobs)

	results := []types.Job{{JobTitle: "Support Worker", CompanyName: "Anchor"}}
	s, _ = Reduce(s, SearchSettled{Gen: search.Gen, Results: results})

	assert.False(t, s.Searching)
	assert.False(t, s.AIInFlight)
	assert.Equal(t, results, s.SearchResults)
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, SearchRequested{Query: ""})

	assert.Empty(t, effects)
	assert.NotEmpty(t, s.ErrorMessage)
	assert.False(t, s.Searching)
}

func TestSearchFailureShowsEmptyResultsAndError(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, SearchRequested{Query: "support worker"})
	search := effects[0].(SearchJobs)

	s, _ = Reduce(s, SearchSettled{Gen: search.Gen, Err: fmt.Errorf("search backend unavailable")})

	// Both an empty (non-nil) list and an error banner.
	require.NotNil(t, s.SearchResults)
	assert.Empty(t, s.SearchResults)
	assert.NotEmpty(t, s.ErrorMessage)
	assert.False(t, s.Searching)
}

func TestSearchReentrancyRejected(t *testing.T) {
	s := signedInSession(t)
	s, _ = Reduce(s, SearchRequested{Query: "first"})

	before := s
	s, effects := Reduce(s, SearchRequested{Query: "second"})

	assert.Empty(t, effects)
	assert.Equal(t, before, s)
}

func TestJobChosenEmptyGoesToManualInput(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, JobChosen{Description: ""})

	assert.Empty(t, effects)
	assert.Equal(t, StepJobInput, s.Step)
}

func TestJobChosenTriggersAnalysis(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, JobChosen{Description: "We are hiring..."})

	assert.Equal(t, StepAnalyzingJob, s.Step)
	assert.True(t, s.AIInFlight)
	require.Len(t, effects, 1)
	analyze := effects[0].(AnalyzeJob)

	s, _ = Reduce(s, AnalysisSettled{Gen: analyze.Gen, Analysis: testAnalysis()})

	assert.Equal(t, StepJobVerification, s.Step)
	assert.Equal(t, "Case Manager", s.Analysis.JobTitle)
	assert.False(t, s.AIInFlight)
}

func TestAnalysisFailureReturnsToSearch(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, JobChosen{Description: "We are hiring..."})
	analyze := effects[0].(AnalyzeJob)

	s, _ = Reduce(s, AnalysisSettled{Gen: analyze.Gen, Err: fmt.Errorf("bad response")})

	assert.Equal(t, StepJobSearch, s.Step)
	assert.NotEmpty(t, s.ErrorMessage)
	assert.Nil(t, s.Analysis)
}

func TestAnalysisEdited(t *testing.T) {
	s := sessionAtVerification(t)

	updated := s.Analysis.Clone()
	updated.Keywords = types.InsertAt(updated.Keywords, 0, "empathy")
	s, effects := Reduce(s, AnalysisEdited{Updated: updated})

	assert.Empty(t, effects)
	assert.Equal(t, StepJobVerification, s.Step)
	assert.Equal(t, []string{"empathy"}, s.Analysis.Keywords)
	// All list fields normalized, never nil.
	assert.NotNil(t, s.Analysis.DesirableAttributes)
}

// sessionAtVerification walks to JobVerification with an analysis in hand.
func sessionAtVerification(t *testing.T) Session {
	t.Helper()
	s := signedInSession(t)
	s, effects := Reduce(s, JobChosen{Description: "We are hiring..."})
	analyze := effects[0].(AnalyzeJob)
	s, _ = Reduce(s, AnalysisSettled{Gen: analyze.Gen, Analysis: testAnalysis()})
	require.Equal(t, StepJobVerification, s.Step)
	return s
}

// sessionAtFinalVerification additionally confirms the analysis and theme.
func sessionAtFinalVerification(t *testing.T) Session {
	t.Helper()
	s := sessionAtVerification(t)
	s, _ = Reduce(s, AnalysisConfirmed{})
	require.Equal(t, StepTemplateSelection, s.Step)
	s, _ = Reduce(s, TemplateChosen{ThemeID: "classic"})
	require.Equal(t, StepFinalVerification, s.Step)
	return s
}

func TestGenerationHappyPath(t *testing.T) {
	s := sessionAtFinalVerification(t)
	s, effects := Reduce(s, GenerationConfirmed{})

	assert.Equal(t, StepGenerating, s.Step)
	require.Len(t, effects, 1)
	gen := effects[0].(GeneratePackage)
	require.NotNil(t, gen.Profile)
	require.NotNil(t, gen.Analysis)

	s, _ = Reduce(s, GenerationSettled{Gen: gen.Gen, Package: testPackage()})

	assert.Equal(t, StepResults, s.Step)
	require.NotNil(t, s.Package)
	assert.False(t, s.AIInFlight)
}

func TestGenerationFailureKeepsAnalysisAndTemplate(t *testing.T) {
	s := sessionAtFinalVerification(t)
	s, effects := Reduce(s, GenerationConfirmed{})
	gen := effects[0].(GeneratePackage)

	s, _ = Reduce(s, GenerationSettled{Gen: gen.Gen, Err: fmt.Errorf("model overloaded")})

	assert.Equal(t, StepFinalVerification, s.Step)
	assert.NotEmpty(t, s.ErrorMessage)
	// The analyzed job and chosen theme survive the failure.
	require.NotNil(t, s.Analysis)
	assert.Equal(t, "classic", s.Template)
	assert.Nil(t, s.Package)
}

func TestGenerationWithoutAnalysisRejected(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, GenerationConfirmed{})

	assert.Empty(t, effects)
	assert.Equal(t, StepJobSearch, s.Step)
	assert.NotEmpty(t, s.ErrorMessage)
}

func TestHeadlinesRequireCareerHistory(t *testing.T) {
	s, effects := Reduce(NewSession(), AuthChanged{Identity: testIdentity()})
	load := effects[0].(LoadProfile)
	s, _ = Reduce(s, ProfileLoadSettled{Gen: load.Gen, Profile: nil})

	s, effects = Reduce(s, HeadlinesRequested{})

	assert.Empty(t, effects)
	assert.NotEmpty(t, s.ErrorMessage)
}

func TestHeadlinesFlow(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, HeadlinesRequested{})

	require.Len(t, effects, 1)
	suggest := effects[0].(SuggestHeadlines)

	s, _ = Reduce(s, HeadlinesSettled{Gen: suggest.Gen, Headlines: []string{"A", "B", "C"}})

	assert.Equal(t, []string{"A", "B", "C"}, s.HeadlineIdeas)
	assert.False(t, s.AIInFlight)
}

func TestHeadlineSwapped(t *testing.T) {
	s := sessionAtFinalVerification(t)
	s, effects := Reduce(s, GenerationConfirmed{})
	gen := effects[0].(GeneratePackage)
	s, _ = Reduce(s, GenerationSettled{Gen: gen.Gen, Package: testPackage()})

	s, _ = Reduce(s, HeadlineSwapped{Index: 1})
	assert.Equal(t, "Headline B", s.Package.TailoredResume.ResumeHeadline)

	// Out-of-range indices are no-ops.
	before := s
	s, _ = Reduce(s, HeadlineSwapped{Index: 99})
	assert.Equal(t, before, s)
	s, _ = Reduce(s, HeadlineSwapped{Index: -1})
	assert.Equal(t, before, s)
}

func TestBackNavigation(t *testing.T) {
	s := sessionAtFinalVerification(t)

	s, _ = Reduce(s, BackRequested{})
	assert.Equal(t, StepTemplateSelection, s.Step)
	s, _ = Reduce(s, BackRequested{})
	assert.Equal(t, StepJobVerification, s.Step)
	s, _ = Reduce(s, BackRequested{})
	assert.Equal(t, StepJobSearch, s.Step)

	// No step back from the search hub.
	before := s
	s, _ = Reduce(s, BackRequested{})
	assert.Equal(t, before, s)
}

func TestStartOverRetainsProfile(t *testing.T) {
	s := sessionAtFinalVerification(t)
	genBefore := s.Generation

	s, _ = Reduce(s, StartOver{})

	assert.Equal(t, StepJobSearch, s.Step)
	assert.Nil(t, s.Analysis)
	assert.Nil(t, s.Package)
	assert.Equal(t, DefaultTemplate, s.Template)
	require.NotNil(t, s.Profile)
	assert.Greater(t, s.Generation, genBefore)
}

func TestStartOverDiscardsInFlightResults(t *testing.T) {
	s := signedInSession(t)
	s, effects := Reduce(s, SearchRequested{Query: "support worker"})
	search := effects[0].(SearchJobs)

	// The user starts over while the search is still out.
	s, _ = Reduce(s, StartOver{})

	s, _ = Reduce(s, SearchSettled{Gen: search.Gen, Results: []types.Job{{JobTitle: "Stale"}}})

	// The stale result must not land.
	assert.Nil(t, s.SearchResults)
	assert.False(t, s.Searching)
}

func TestSignOutClearsProfile(t *testing.T) {
	s := signedInSession(t)
	s, _ = Reduce(s, SignOut{})

	assert.Equal(t, StepUnauthenticated, s.Step)
	assert.Nil(t, s.Profile)
	assert.Nil(t, s.Identity)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := signedInSession(t)
	snapshot := s.Clone()

	_, _ = Reduce(s, SearchRequested{Query: "support worker"})
	_, _ = Reduce(s, JobChosen{Description: "text"})
	_, _ = Reduce(s, StartOver{})

	assert.Equal(t, snapshot, s)
}
