// Package wizard implements the resume-tailoring workflow as an explicit
// state machine. Transitions are pure: Reduce takes a session value and an
// event and returns the next session plus a description of side effects to
// perform. The Engine executes those effects against the AI gateway and the
// profile store and feeds their results back in as completion events.
package wizard

import (
	"github.com/okgoogle13/resume-copilot/internal/types"
)

// Step identifies the wizard's current position.
type Step string

// Wizard steps, in flow order.
const (
	StepUnauthenticated   Step = "UNAUTHENTICATED"
	StepProfileSetup      Step = "PROFILE_SETUP"
	StepJobSearch         Step = "JOB_SEARCH"
	StepJobInput          Step = "JOB_INPUT"
	StepAnalyzingJob      Step = "ANALYZING_JOB"
	StepJobVerification   Step = "JOB_VERIFICATION"
	StepTemplateSelection Step = "TEMPLATE_SELECTION"
	StepFinalVerification Step = "FINAL_VERIFICATION"
	StepGenerating        Step = "GENERATING"
	StepResults           Step = "RESULTS"
)

// DefaultTemplate is the theme selected until the user picks one.
const DefaultTemplate = "modern"

// Identity is the authenticated principal driving a session.
type Identity struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Session is the complete workflow state. It is a value object: Reduce
// never mutates its input, so a snapshot taken at any point stays stable.
type Session struct {
	Step     Step
	Identity *Identity

	// ProfileLoading marks the loading sub-state between an auth change
	// and the profile load settling; the machine does not advance while set.
	ProfileLoading bool
	Profile        *types.UserProfile

	// SearchResults is nil before any search, and non-nil (possibly empty)
	// after one settles. The distinction drives the downstream rendering:
	// empty list plus no error banner means "searched, found nothing".
	SearchResults []types.Job
	Searching     bool

	Analysis *types.JobAnalysis
	Template string
	Package  *types.IntelligencePackage

	// HeadlineIdeas holds profile-setup headline suggestions, purely for
	// display; they are not part of the generation flow.
	HeadlineIdeas []string

	// ErrorMessage is the single user-visible error for the current step.
	ErrorMessage string

	// Generation tags outbound calls. Results settling with a stale
	// generation are discarded: they must not repopulate state that has
	// since been reset.
	Generation uint64

	// AIInFlight is set while an AI call (search, analysis, generation,
	// headlines) is outstanding. A new triggering event is rejected until
	// the in-flight call settles.
	AIInFlight bool

	// SaveInFlight is set while an optimistic profile save is outstanding.
	// It does not block other actions; only the rollback path consults it.
	SaveInFlight bool
}

// NewSession returns the initial session.
func NewSession() Session {
	return Session{
		Step:     StepUnauthenticated,
		Template: DefaultTemplate,
	}
}

// Clone returns a deep copy of the session so callers can hold snapshots
// without sharing mutable references with the engine.
func (s Session) Clone() Session {
	out := s
	if s.Identity != nil {
		id := *s.Identity
		out.Identity = &id
	}
	out.Profile = s.Profile.Clone()
	out.Analysis = s.Analysis.Clone()
	if s.SearchResults != nil {
		out.SearchResults = append([]types.Job{}, s.SearchResults...)
	}
	if s.Package != nil {
		pkg := *s.Package
		pkg.TailoredResume = *s.Package.TailoredResume.Clone()
		pkg.HeadlineSuggestions = append([]string(nil), s.Package.HeadlineSuggestions...)
		pkg.KSCResponses = append([]types.KSCResponse(nil), s.Package.KSCResponses...)
		pkg.Evaluation.ActionableFeedback = append([]string(nil), s.Package.Evaluation.ActionableFeedback...)
		pkg.Evaluation.QuantificationSuggestions = append([]types.QuantificationSuggestion(nil), s.Package.Evaluation.QuantificationSuggestions...)
		out.Package = &pkg
	}
	out.HeadlineIdeas = append([]string(nil), s.HeadlineIdeas...)
	return out
}

// reset clears per-run data. Profile and identity are retained unless
// clearAll is set (sign-out).
func (s Session) reset(clearAll bool) Session {
	out := s
	out.SearchResults = nil
	out.Searching = false
	out.Analysis = nil
	out.Template = DefaultTemplate
	out.Package = nil
	out.HeadlineIdeas = nil
	out.ErrorMessage = ""
	out.AIInFlight = false
	out.SaveInFlight = false
	out.Generation++
	if clearAll {
		out.Identity = nil
		out.Profile = nil
		out.ProfileLoading = false
		out.Step = StepUnauthenticated
	} else {
		out.Step = StepJobSearch
	}
	return out
}
