package types

// ComponentScore is one dimension of the evaluation breakdown.
type ComponentScore struct {
	Score    int    `json:"score"`
	Analysis string `json:"analysis"`
}

// ScoreBreakdown holds the four fixed evaluation dimensions. All four are
// always present on a validated package.
type ScoreBreakdown struct {
	HardSkillsMatch             ComponentScore `json:"hardSkillsMatch"`
	SoftSkillsAndVerbsMatch     ComponentScore `json:"softSkillsAndVerbsMatch"`
	QuantifiableAchievements    ComponentScore `json:"quantifiableAchievements"`
	ATSReadabilityAndFormatting ComponentScore `json:"atsReadabilityAndFormatting"`
}

// QuantificationSuggestion proposes a rewritten bullet with the suggested
// numerical insertions highlighted in brackets.
type QuantificationSuggestion struct {
	OriginalText     string `json:"originalText"`
	SuggestedRewrite string `json:"suggestedRewrite"`
}

// Evaluation is the audit of how well the original profile matches the job.
// Scores are integers in [0,100].
type Evaluation struct {
	OverallScore               int                        `json:"overallScore"`
	OverallAnalysis            string                     `json:"overallAnalysis"`
	ScoreBreakdown             ScoreBreakdown             `json:"scoreBreakdown"`
	ActionableFeedback         []string                   `json:"actionableFeedback"`
	QuantificationSuggestions  []QuantificationSuggestion `json:"quantificationSuggestions"`
}

// KSCResponse is one Key Selection Criteria pair: the criteria extracted
// from the posting and a STAR-method response.
type KSCResponse struct {
	Criteria string `json:"criteria"`
	Response string `json:"response"`
}

// IntelligencePackage is the terminal generation artifact: the rewritten
// resume plus audit, headline alternatives, cover letter, and KSC responses.
// It is immutable after creation except for headline swapping.
type IntelligencePackage struct {
	TailoredResume      UserProfile   `json:"tailoredResume"`
	Evaluation          Evaluation    `json:"evaluation"`
	HeadlineSuggestions []string      `json:"headlineSuggestions"`
	CoverLetter         string        `json:"coverLetter"`
	KSCResponses        []KSCResponse `json:"kscResponses"`
}

// DocumentType selects which rendered document an export produces.
type DocumentType string

// Document type selectors handed to the renderer.
const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "coverLetter"
	DocumentKSC         DocumentType = "ksc"
)

// AllDocumentTypes lists every renderable document, in export order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{DocumentResume, DocumentCoverLetter, DocumentKSC}
}
