package schemas

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

func validAnalysisJSON() map[string]any {
	return map[string]any{
		"jobTitle":                   "Youth Worker",
		"companyName":                "Anchor Services",
		"keywords":                   []string{"case notes"},
		"minimumRequirements":        []string{"Cert IV"},
		"keyResponsibilitiesAndKpis": []string{"Run intake sessions"},
		"valuedOutcomes":             []string{},
		"roleSpecificHardSkills":     []string{},
		"companyNicheAndValues":      []string{},
		"desirableAttributes":        []string{},
	}
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestJobAnalysisValidateAccepts(t *testing.T) {
	err := JobAnalysis().Validate(marshal(t, validAnalysisJSON()))
	assert.NoError(t, err)
}

func TestJobAnalysisValidateRejectsMissingField(t *testing.T) {
	doc := validAnalysisJSON()
	delete(doc, "keywords")

	err := JobAnalysis().Validate(marshal(t, doc))
	require.Error(t, err)

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "JobAnalysis", mismatch.Schema)
	assert.Contains(t, mismatch.Message, "keywords")
}

func TestJobAnalysisValidateRejectsWrongType(t *testing.T) {
	doc := validAnalysisJSON()
	doc["keywords"] = "not a list"

	err := JobAnalysis().Validate(marshal(t, doc))

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "keywords", mismatch.Field)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	err := JobAnalysis().Validate([]byte("{not json"))

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "(root)", mismatch.Field)
}

func TestJobAnalysisDecode(t *testing.T) {
	var analysis types.JobAnalysis
	err := JobAnalysis().Decode(marshal(t, validAnalysisJSON()), &analysis)

	require.NoError(t, err)
	assert.Equal(t, "Youth Worker", analysis.JobTitle)
	assert.Equal(t, []string{"case notes"}, analysis.Keywords)
}

func TestJobSearchResultsBounds(t *testing.T) {
	job := map[string]any{
		"jobTitle":       "Support Worker",
		"companyName":    "Anchor Services",
		"location":       "Melbourne",
		"jobDescription": "Overnight support shifts.",
	}

	assert.NoError(t, JobSearchResults().Validate(marshal(t, []any{job})))
	assert.NoError(t, JobSearchResults().Validate(marshal(t, []any{})))

	six := []any{job, job, job, job, job, job}
	err := JobSearchResults().Validate(marshal(t, six))
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestHeadlineListExactlyThree(t *testing.T) {
	assert.NoError(t, HeadlineList().Validate(marshal(t, []string{"a", "b", "c"})))

	var mismatch *MismatchError
	require.ErrorAs(t, HeadlineList().Validate(marshal(t, []string{"a", "b"})), &mismatch)
	require.ErrorAs(t, HeadlineList().Validate(marshal(t, []string{"a", "b", "c", "d"})), &mismatch)
}

func validPackageJSON() map[string]any {
	resume := map[string]any{
		"fullName":       "Dana Okafor",
		"resumeHeadline": "Community Services Coordinator",
		"phone":          "0400 000 000",
		"email":          "dana@example.com",
		"location":       "Melbourne",
		"careerSummary":  "Ten years in community programs.",
		"education":      []any{},
		"skills":         []any{},
		"experience":     []any{},
		"certificationsAndDevelopment": map[string]any{
			"certifications": []any{},
			"trainings":      []any{},
		},
	}
	component := func(score int) map[string]any {
		return map[string]any{"score": score, "analysis": "solid"}
	}
	evaluation := map[string]any{
		"overallScore":    82,
		"overallAnalysis": "Strong alignment.",
		"scoreBreakdown": map[string]any{
			"hardSkillsMatch":             component(80),
			"softSkillsAndVerbsMatch":     component(85),
			"quantifiableAchievements":    component(78),
			"atsReadabilityAndFormatting": component(90),
		},
		"actionableFeedback": []string{"Add metrics", "Trim summary", "Mirror keywords"},
	}
	ksc := []any{
		map[string]any{"criteria": "Teamwork", "response": "Situation..."},
		map[string]any{"criteria": "Safety", "response": "Situation..."},
		map[string]any{"criteria": "Communication", "response": "Situation..."},
	}
	return map[string]any{
		"tailoredResume":      resume,
		"evaluation":          evaluation,
		"headlineSuggestions": []string{"a", "b", "c"},
		"coverLetter":         "Dear Hiring Manager...",
		"kscResponses":        ksc,
	}
}

func TestIntelligencePackageValidateAccepts(t *testing.T) {
	assert.NoError(t, IntelligencePackage().Validate(marshal(t, validPackageJSON())))
}

func TestIntelligencePackageRejectsScoreOutOfRange(t *testing.T) {
	doc := validPackageJSON()
	doc["evaluation"].(map[string]any)["overallScore"] = 120

	err := IntelligencePackage().Validate(marshal(t, doc))
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)

	doc["evaluation"].(map[string]any)["overallScore"] = -1
	require.ErrorAs(t, IntelligencePackage().Validate(marshal(t, doc)), &mismatch)
}

func TestIntelligencePackageRejectsMissingCoverLetter(t *testing.T) {
	doc := validPackageJSON()
	delete(doc, "coverLetter")

	var mismatch *MismatchError
	require.ErrorAs(t, IntelligencePackage().Validate(marshal(t, doc)), &mismatch)
	assert.Contains(t, mismatch.Message, "coverLetter")
}

func TestIntelligencePackageRejectsTooFewKSC(t *testing.T) {
	doc := validPackageJSON()
	doc["kscResponses"] = []any{
		map[string]any{"criteria": "Teamwork", "response": "..."},
	}

	var mismatch *MismatchError
	require.ErrorAs(t, IntelligencePackage().Validate(marshal(t, doc)), &mismatch)
}

func TestGenAISchemaShapes(t *testing.T) {
	hint := JobAnalysis().GenAI()
	require.NotNil(t, hint)
	assert.Len(t, hint.Properties, 9)
	assert.Len(t, hint.Required, 9)

	// Array-rooted hints are a single array level: the search items are
	// objects and the headline items strings, never nested arrays.
	search := JobSearchResults().GenAI()
	require.NotNil(t, search)
	assert.Equal(t, genai.TypeArray, search.Type)
	require.NotNil(t, search.Items)
	assert.Equal(t, genai.TypeObject, search.Items.Type)
	assert.Len(t, search.Items.Properties, 4)

	list := HeadlineList().GenAI()
	require.NotNil(t, list)
	assert.Equal(t, genai.TypeArray, list.Type)
	require.NotNil(t, list.Items)
	assert.Equal(t, genai.TypeString, list.Items.Type)
}

func TestJobSearchResultsDecodeFlatArray(t *testing.T) {
	raw := `[{"jobTitle":"Support Worker","companyName":"Anchor","location":"Melbourne","jobDescription":"Overnight shifts."}]`

	var jobs []types.Job
	require.NoError(t, JobSearchResults().Decode([]byte(raw), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Support Worker", jobs[0].JobTitle)
}

func TestHeadlineListDecodeFlatArray(t *testing.T) {
	var headlines []string
	require.NoError(t, HeadlineList().Decode([]byte(`["a","b","c"]`), &headlines))
	assert.Equal(t, []string{"a", "b", "c"}, headlines)
}
