package wizard

import (
	"errors"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

// Reduce applies one event to a session and returns the next session plus
// the effects the engine must perform. It is a pure function: the input
// session is never mutated and no I/O happens here.
func Reduce(s Session, ev Event) (Session, []Effect) {
	switch ev := ev.(type) {
	case AuthChanged:
		return reduceAuthChanged(s, ev)
	case ProfileLoadSettled:
		return reduceProfileLoadSettled(s, ev)
	case ProfileSubmitted:
		return reduceProfileSubmitted(s, ev)
	case ProfileSaveSettled:
		return reduceProfileSaveSettled(s, ev)
	case SearchRequested:
		return reduceSearchRequested(s, ev)
	case SearchSettled:
		return reduceSearchSettled(s, ev)
	case JobChosen:
		return reduceJobChosen(s, ev)
	case AnalysisSettled:
		return reduceAnalysisSettled(s, ev)
	case AnalysisEdited:
		return reduceAnalysisEdited(s, ev)
	case AnalysisConfirmed:
		return reduceAnalysisConfirmed(s)
	case TemplateChosen:
		return reduceTemplateChosen(s, ev)
	case GenerationConfirmed:
		return reduceGenerationConfirmed(s)
	case GenerationSettled:
		return reduceGenerationSettled(s, ev)
	case HeadlinesRequested:
		return reduceHeadlinesRequested(s)
	case HeadlinesSettled:
		return reduceHeadlinesSettled(s, ev)
	case HeadlineSwapped:
		return reduceHeadlineSwapped(s, ev)
	case BackRequested:
		return reduceBackRequested(s)
	case StartOver:
		return s.reset(false), nil
	case SignOut:
		return s.reset(true), nil
	default:
		return s, nil
	}
}

func reduceAuthChanged(s Session, ev AuthChanged) (Session, []Effect) {
	if ev.Identity == nil {
		return s.reset(true), nil
	}
	out := s
	id := *ev.Identity
	out.Identity = &id
	out.ProfileLoading = true
	out.ErrorMessage = ""
	// Results of calls issued before the identity change must not land in
	// the new session.
	out.Generation++
	out.AIInFlight = false
	out.SaveInFlight = false
	return out, []Effect{LoadProfile{Gen: out.Generation, UserID: id.UserID}}
}

func reduceProfileLoadSettled(s Session, ev ProfileLoadSettled) (Session, []Effect) {
	if ev.Gen != s.Generation {
		return s, nil
	}
	out := s
	out.ProfileLoading = false
	if ev.Err != nil {
		// Surface the error but do not advance; the user retries by
		// refreshing (re-triggering the auth change).
		out.ErrorMessage = "Could not load your profile. Please try again."
		return out, nil
	}
	if ev.Profile != nil {
		out.Profile = ev.Profile.Clone()
		// Advance only from the entry steps; a user already mid-flow
		// stays where they are.
		if out.Step == StepUnauthenticated || out.Step == StepProfileSetup {
			out.Step = StepJobSearch
		}
		return out, nil
	}
	// First login: route to profile creation with a profile seeded from
	// the identity.
	out.Profile = types.SeedProfile(s.Identity.DisplayName, s.Identity.Email)
	out.Step = StepProfileSetup
	return out, nil
}

func reduceProfileSubmitted(s Session, ev ProfileSubmitted) (Session, []Effect) {
	if s.Identity == nil {
		out := s
		out.ErrorMessage = "You must be signed in to save a profile."
		return out, nil
	}
	if ev.Profile == nil {
		out := s
		out.ErrorMessage = "Nothing to save."
		return out, nil
	}
	// Optimistic adoption: advance immediately to hide save latency; the
	// save settles asynchronously and rolls back on failure.
	out := s
	out.Profile = ev.Profile.Clone()
	out.Step = StepJobSearch
	out.ErrorMessage = ""
	out.SaveInFlight = true
	return out, []Effect{SaveProfile{
		Gen:     out.Generation,
		UserID:  s.Identity.UserID,
		Profile: ev.Profile.Clone(),
	}}
}

func reduceProfileSaveSettled(s Session, ev ProfileSaveSettled) (Session, []Effect) {
	if ev.Gen != s.Generation {
		return s, nil
	}
	out := s
	out.SaveInFlight = false
	if ev.Err != nil {
		// Rollback: the UI already advanced optimistically, so a failed
		// save sends the user back to the editor with the in-memory
		// profile intact for retry.
		out.ErrorMessage = userMessage(ev.Err, "Failed to save your profile.")
		out.Step = StepProfileSetup
	}
	return out, nil
}

func reduceSearchRequested(s Session, ev SearchRequested) (Session, []Effect) {
	if ev.Query == "" {
		out := s
		out.ErrorMessage = "Enter a search query."
		return out, nil
	}
	if s.AIInFlight {
		return s, nil
	}
	out := s
	out.Searching = true
	out.SearchResults = nil
	out.ErrorMessage = ""
	out.AIInFlight = true
	return out, []Effect{SearchJobs{Gen: out.Generation, Query: ev.Query}}
}

func reduceSearchSettled(s Session, ev SearchSettled) (Session, []Effect) {
	if ev.Gen != s.Generation {
		return s, nil
	}
	out := s
	out.Searching = false
	out.AIInFlight = false
	if ev.Err != nil {
		// Both together: an empty result list so the view renders "no
		// results" instead of a perpetual loading state, and an error
		// banner explaining why.
		out.SearchResults = []types.Job{}
		out.ErrorMessage = userMessage(ev.Err, "Job search failed.")
		return out, nil
	}
	out.SearchResults = ev.Results
	if out.SearchResults == nil {
		out.SearchResults = []types.Job{}
	}
	return out, nil
}

func reduceJobChosen(s Session, ev JobChosen) (Session, []Effect) {
	if ev.Description == "" {
		// Manual entry path: no AI call.
		out := s
		out.Step = StepJobInput
		return out, nil
	}
	if s.AIInFlight {
		return s, nil
	}
	out := s
	out.Step = StepAnalyzingJob
	out.ErrorMessage = ""
	out.AIInFlight = true
	return out, []Effect{AnalyzeJob{Gen: out.Generation, Text: ev.Description}}
}

func reduceAnalysisSettled(s Session, ev AnalysisSettled) (Session, []Effect) {
	if ev.Gen != s.Generation {
		return s, nil
	}
	out := s
	out.AIInFlight = false
	if ev.Err != nil {
		out.ErrorMessage = userMessage(ev.Err, "Failed to analyze the job description.")
		out.Step = StepJobSearch
		return out, nil
	}
	out.Analysis = ev.Analysis.Clone()
	out.Step = StepJobVerification
	return out, nil
}

func reduceAnalysisEdited(s Session, ev AnalysisEdited) (Session, []Effect) {
	if s.Analysis == nil || ev.Updated == nil {
		return s, nil
	}
	out := s
	out.Analysis = ev.Updated.Clone()
	out.Analysis.Normalize()
	return out, nil
}

func reduceAnalysisConfirmed(s Session) (Session, []Effect) {
	if s.Analysis == nil {
		return s, nil
	}
	out := s
	out.Step = StepTemplateSelection
	return out, nil
}

func reduceTemplateChosen(s Session, ev TemplateChosen) (Session, []Effect) {
	out := s
	if ev.ThemeID != "" {
		out.Template = ev.ThemeID
	}
	out.Step = StepFinalVerification
	return out, nil
}

func reduceGenerationConfirmed(s Session) (Session, []Effect) {
	if s.Analysis == nil || s.Profile == nil {
		out := s
		out.ErrorMessage = "Missing job analysis or profile."
		out.Step = StepJobSearch
		return out, nil
	}
	if s.AIInFlight {
		return s, nil
	}
	out := s
	out.Step = StepGenerating
	out.ErrorMessage = ""
	out.AIInFlight = true
	return out, []Effect{GeneratePackage{
		Gen:      out.Generation,
		Profile:  s.Profile.Clone(),
		Analysis: s.Analysis.Clone(),
	}}
}

func reduceGenerationSettled(s Session, ev GenerationSettled) (Session, []Effect) {
	if ev.Gen != s.Generation {
		return s, nil
	}
	out := s
	out.AIInFlight = false
	if ev.Err != nil {
		// Back to FinalVerification, not JobSearch: the user must not
		// lose their analyzed job and template choice on a generation
		// failure.
		out.ErrorMessage = userMessage(ev.Err, "Generation failed. Please try again.")
		out.Step = StepFinalVerification
		return out, nil
	}
	out.Package = ev.Package
	out.Step = StepResults
	return out, nil
}

func reduceHeadlinesRequested(s Session) (Session, []Effect) {
	if !s.Profile.HasCareerHistory() {
		out := s
		out.ErrorMessage = "Add a career summary and at least one experience entry first."
		return out, nil
	}
	if s.AIInFlight {
		return s, nil
	}
	out := s
	out.ErrorMessage = ""
	out.AIInFlight = true
	return out, []Effect{SuggestHeadlines{
		Gen:      out.Generation,
		Profile:  s.Profile.Clone(),
		Analysis: s.Analysis.Clone(),
	}}
}

func reduceHeadlinesSettled(s Session, ev HeadlinesSettled) (Session, []Effect) {
	if ev.Gen != s.Generation {
		return s, nil
	}
	out := s
	out.AIInFlight = false
	if ev.Err != nil {
		out.ErrorMessage = userMessage(ev.Err, "Unable to generate headlines at this moment.")
		return out, nil
	}
	out.HeadlineIdeas = append([]string(nil), ev.Headlines...)
	return out, nil
}

func reduceHeadlineSwapped(s Session, ev HeadlineSwapped) (Session, []Effect) {
	if s.Package == nil || ev.Index < 0 || ev.Index >= len(s.Package.HeadlineSuggestions) {
		return s, nil
	}
	out := s
	pkg := *s.Package
	resume := *s.Package.TailoredResume.Clone()
	resume.ResumeHeadline = s.Package.HeadlineSuggestions[ev.Index]
	pkg.TailoredResume = resume
	out.Package = &pkg
	return out, nil
}

func reduceBackRequested(s Session) (Session, []Effect) {
	out := s
	switch s.Step {
	case StepJobInput:
		out.Step = StepJobSearch
	case StepJobVerification:
		out.Step = StepJobSearch
	case StepTemplateSelection:
		out.Step = StepJobVerification
	case StepFinalVerification:
		out.Step = StepTemplateSelection
	default:
		return s, nil
	}
	out.ErrorMessage = ""
	return out, nil
}

// userFacing is implemented by errors that carry a message suitable for
// direct display, such as the gateway's typed errors.
type userFacing interface {
	UserMessage() string
}

// userMessage extracts a human-readable message from a typed error, falling
// back to the given default for technical failures.
func userMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var uf userFacing
	if errors.As(err, &uf) {
		if msg := uf.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
