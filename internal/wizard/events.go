package wizard

import (
	"github.com/okgoogle13/resume-copilot/internal/types"
)

// Event is a user action or an effect completion applied to the machine.
type Event interface{ isEvent() }

// --- user / external events ---

// AuthChanged fires when the identity provider reports a sign-in (Identity
// set) or sign-out (Identity nil).
type AuthChanged struct {
	Identity *Identity
}

// ProfileSubmitted carries a profile the user saved in ProfileSetup. The
// machine adopts it optimistically and rolls back if the save fails.
type ProfileSubmitted struct {
	Profile *types.UserProfile
}

// SearchRequested triggers a job search.
type SearchRequested struct {
	Query string
}

// JobChosen carries the job description the user picked or pasted. Empty
// text routes to the manual-entry step without calling the AI.
type JobChosen struct {
	Description string
}

// AnalysisEdited replaces the current job analysis with the user's edits.
// Pure local replace; no external call, no step change.
type AnalysisEdited struct {
	Updated *types.JobAnalysis
}

// AnalysisConfirmed advances past job verification.
type AnalysisConfirmed struct{}

// TemplateChosen records the visual template and advances.
type TemplateChosen struct {
	ThemeID string
}

// GenerationConfirmed triggers the final generation call.
type GenerationConfirmed struct{}

// HeadlinesRequested asks for profile headline suggestions during profile
// setup. Guarded on the profile carrying a summary and work history.
type HeadlinesRequested struct{}

// HeadlineSwapped swaps the displayed resume headline for one of the
// package's alternatives. Local only; the package is otherwise immutable.
type HeadlineSwapped struct {
	Index int
}

// BackRequested steps back one wizard screen where the flow allows it.
type BackRequested struct{}

// StartOver clears the job analysis, template choice, and generated
// package; the profile is retained.
type StartOver struct{}

// SignOut clears everything including the profile.
type SignOut struct{}

// --- effect completion events ---

// ProfileLoadSettled reports the result of a LoadProfile effect.
type ProfileLoadSettled struct {
	Gen     uint64
	Profile *types.UserProfile
	Err     error
}

// ProfileSaveSettled reports the result of a SaveProfile effect.
type ProfileSaveSettled struct {
	Gen uint64
	Err error
}

// SearchSettled reports the result of a SearchJobs effect.
type SearchSettled struct {
	Gen     uint64
	Results []types.Job
	Err     error
}

// AnalysisSettled reports the result of an AnalyzeJob effect.
type AnalysisSettled struct {
	Gen      uint64
	Analysis *types.JobAnalysis
	Err      error
}

// GenerationSettled reports the result of a GeneratePackage effect.
type GenerationSettled struct {
	Gen     uint64
	Package *types.IntelligencePackage
	Err     error
}

// HeadlinesSettled reports the result of a SuggestHeadlines effect.
type HeadlinesSettled struct {
	Gen       uint64
	Headlines []string
	Err       error
}

func (AuthChanged) isEvent()         {}
func (ProfileSubmitted) isEvent()    {}
func (SearchRequested) isEvent()     {}
func (JobChosen) isEvent()           {}
func (AnalysisEdited) isEvent()      {}
func (AnalysisConfirmed) isEvent()   {}
func (TemplateChosen) isEvent()      {}
func (GenerationConfirmed) isEvent() {}
func (HeadlinesRequested) isEvent()  {}
func (HeadlineSwapped) isEvent()     {}
func (BackRequested) isEvent()       {}
func (StartOver) isEvent()           {}
func (SignOut) isEvent()             {}
func (ProfileLoadSettled) isEvent()  {}
func (ProfileSaveSettled) isEvent()  {}
func (SearchSettled) isEvent()       {}
func (AnalysisSettled) isEvent()     {}
func (GenerationSettled) isEvent()   {}
func (HeadlinesSettled) isEvent()    {}

// Effect describes a side effect for the engine to perform. Every effect
// carries the generation it was issued from; its completion event is
// discarded if the session's generation has moved on.
type Effect interface{ isEffect() }

// LoadProfile loads the identity's stored profile.
type LoadProfile struct {
	Gen    uint64
	UserID string
}

// SaveProfile upserts the profile for the user.
type SaveProfile struct {
	Gen     uint64
	UserID  string
	Profile *types.UserProfile
}

// SearchJobs runs a job search.
type SearchJobs struct {
	Gen   uint64
	Query string
}

// AnalyzeJob analyzes a job description.
type AnalyzeJob struct {
	Gen  uint64
	Text string
}

// GeneratePackage generates the intelligence package.
type GeneratePackage struct {
	Gen      uint64
	Profile  *types.UserProfile
	Analysis *types.JobAnalysis
}

// SuggestHeadlines generates profile headline suggestions.
type SuggestHeadlines struct {
	Gen      uint64
	Profile  *types.UserProfile
	Analysis *types.JobAnalysis
}

func (LoadProfile) isEffect()      {}
func (SaveProfile) isEffect()      {}
func (SearchJobs) isEffect()       {}
func (AnalyzeJob) isEffect()       {}
func (GeneratePackage) isEffect()  {}
func (SuggestHeadlines) isEffect() {}
