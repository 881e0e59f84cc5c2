// Package gateway implements the stateless AI operations: job analysis,
// job search, intelligence-package generation, and headline suggestions.
// Each operation makes a single outbound call, validates the reply against
// its declared schema, and translates failures into typed errors. Retry
// policy, if any, belongs to the caller.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okgoogle13/resume-copilot/internal/llm"
	"github.com/okgoogle13/resume-copilot/internal/prompts"
	"github.com/okgoogle13/resume-copilot/internal/schemas"
	"github.com/okgoogle13/resume-copilot/internal/types"
)

// Gateway holds the LLM client shared by all operations. It keeps no
// session state and is safe to invoke concurrently for unrelated requests.
type Gateway struct {
	client llm.Client
}

// New creates a Gateway backed by the given LLM client.
func New(client llm.Client) *Gateway {
	return &Gateway{client: client}
}

// AnalyzeJobDescription extracts a structured JobAnalysis from raw job
// posting text. On success every required field is present (list fields
// possibly empty); on any failure a typed *AnalysisError is returned and
// never a partial object.
func (g *Gateway) AnalyzeJobDescription(ctx context.Context, text string) (*types.JobAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &AnalysisError{Kind: KindInvalidInput, Message: "job description text is empty"}
	}

	schema := schemas.JobAnalysis()
	template := prompts.MustGet("gateway.json", "analyze-job")
	prompt := prompts.Format(template, map[string]string{"JobText": text})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierFlash, &llm.JSONRequest{Schema: schema.GenAI()})
	if err != nil {
		return nil, &AnalysisError{Kind: KindTransport, Message: "the AI service call failed", Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &AnalysisError{Kind: KindBadResponse, Message: "the AI returned an empty analysis"}
	}

	var analysis types.JobAnalysis
	if err := schema.Decode([]byte(raw), &analysis); err != nil {
		return nil, &AnalysisError{Kind: KindBadResponse, Message: "the AI returned an invalid analysis", Cause: err}
	}
	analysis.Normalize()
	return &analysis, nil
}

// SearchJobs finds up to 5 job postings matching the query. A successful
// call with zero matches returns an empty (non-nil) list, distinct from a
// *SearchError failure.
func (g *Gateway) SearchJobs(ctx context.Context, query string) ([]types.Job, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &SearchError{Kind: KindInvalidInput, Message: "search query is empty"}
	}

	schema := schemas.JobSearchResults()
	template := prompts.MustGet("gateway.json", "search-jobs")
	prompt := prompts.Format(template, map[string]string{"Query": query})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierFlash, &llm.JSONRequest{Schema: schema.GenAI()})
	if err != nil {
		return nil, &SearchError{Kind: KindTransport, Message: "the AI service call failed", Cause: err}
	}

	jobs := []types.Job{}
	if err := schema.Decode([]byte(raw), &jobs); err != nil {
		return nil, &SearchError{Kind: KindBadResponse, Message: "the AI returned invalid search results", Cause: err}
	}
	if jobs == nil {
		jobs = []types.Job{}
	}
	return jobs, nil
}

// GenerateIntelligencePackage tailors the profile against the analysis and
// produces the complete package: rewritten resume, evaluation, 3 headline
// alternatives, cover letter, and 3-5 KSC responses. Any failure, including
// an empty or malformed reply, yields a typed *GenerationError; a
// partially-filled package is never returned.
func (g *Gateway) GenerateIntelligencePackage(ctx context.Context, profile *types.UserProfile, analysis *types.JobAnalysis) (*types.IntelligencePackage, error) {
	if profile == nil || analysis == nil {
		return nil, &GenerationError{Kind: KindInvalidInput, Message: "both a profile and a job analysis are required"}
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, &GenerationError{Kind: KindInvalidInput, Message: "failed to encode profile", Cause: err}
	}
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, &GenerationError{Kind: KindInvalidInput, Message: "failed to encode job analysis", Cause: err}
	}

	schema := schemas.IntelligencePackage()
	template := prompts.MustGet("gateway.json", "generate-package")
	prompt := prompts.Format(template, map[string]string{
		"Profile":  string(profileJSON),
		"Analysis": string(analysisJSON),
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierPro, &llm.JSONRequest{Schema: schema.GenAI()})
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Message: "the AI reasoning engine failed to complete the task", Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &GenerationError{Kind: KindBadResponse, Message: "the AI returned an empty response"}
	}

	var pkg types.IntelligencePackage
	if err := schema.Decode([]byte(raw), &pkg); err != nil {
		return nil, &GenerationError{Kind: KindBadResponse, Message: "the AI returned an invalid package", Cause: err}
	}
	pkg.TailoredResume.Development = normalizeDevelopment(pkg.TailoredResume.Development)
	return &pkg, nil
}

// GenerateHeadlineAlternatives returns exactly 3 headline strings for the
// profile, optionally targeted at a job analysis. Years of experience are
// estimated contextually by the model from the profile's free-text date
// ranges; no deterministic date parsing is attempted. The business
// precondition (non-empty summary, at least one experience entry) is
// enforced by the workflow, not here.
func (g *Gateway) GenerateHeadlineAlternatives(ctx context.Context, profile *types.UserProfile, analysis *types.JobAnalysis) ([]string, error) {
	if profile == nil {
		return nil, &GenerationError{Kind: KindInvalidInput, Message: "a profile is required"}
	}

	history := make([]map[string]string, 0, len(profile.Experience))
	for _, e := range profile.Experience {
		history = append(history, map[string]string{
			"title": e.JobTitle,
			"dates": fmt.Sprintf("%s - %s", e.StartDate, e.EndDate),
		})
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, &GenerationError{Kind: KindInvalidInput, Message: "failed to encode work history", Cause: err}
	}

	contextStr := prompts.MustGet("gateway.json", "headline-context-general")
	if analysis != nil {
		contextStr = prompts.Format(prompts.MustGet("gateway.json", "headline-context-targeted"), map[string]string{
			"JobTitle":    analysis.JobTitle,
			"CompanyName": analysis.CompanyName,
			"Keywords":    strings.Join(analysis.Keywords, ", "),
		})
	}

	schema := schemas.HeadlineList()
	template := prompts.MustGet("gateway.json", "headline-suggestions")
	prompt := prompts.Format(template, map[string]string{
		"Summary":     profile.CareerSummary,
		"WorkHistory": string(historyJSON),
		"Context":     contextStr,
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierFlash, &llm.JSONRequest{Schema: schema.GenAI()})
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Message: "unable to generate headlines", Cause: err}
	}

	var headlines []string
	if err := schema.Decode([]byte(raw), &headlines); err != nil {
		return nil, &GenerationError{Kind: KindBadResponse, Message: "the AI returned invalid headlines", Cause: err}
	}
	return headlines, nil
}

// normalizeDevelopment replaces nil credential lists with empty slices, the
// same never-nil guarantee the analysis lists carry.
func normalizeDevelopment(d types.CertificationsAndDevelopment) types.CertificationsAndDevelopment {
	if d.Certifications == nil {
		d.Certifications = []types.Certification{}
	}
	if d.Trainings == nil {
		d.Trainings = []types.Training{}
	}
	return d
}
