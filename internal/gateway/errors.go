package gateway

import "fmt"

// FailureKind distinguishes why a gateway operation failed, so the workflow
// can choose differing user messaging.
type FailureKind string

// Failure kinds.
const (
	// KindInvalidInput means a precondition on the request was violated.
	KindInvalidInput FailureKind = "invalid_input"
	// KindTransport means the upstream service call itself failed.
	KindTransport FailureKind = "transport"
	// KindBadResponse means the upstream reply could not be parsed or did
	// not conform to the declared schema.
	KindBadResponse FailureKind = "bad_response"
)

// AnalysisError reports a failed job-description analysis.
type AnalysisError struct {
	Kind    FailureKind
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }

// UserMessage returns the human-readable cause description.
func (e *AnalysisError) UserMessage() string { return e.Message }

// SearchError reports a failed job search. A search that succeeds with zero
// matches is not an error.
type SearchError struct {
	Kind    FailureKind
	Message string
	Cause   error
}

func (e *SearchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job search failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job search failed: %s", e.Message)
}

func (e *SearchError) Unwrap() error { return e.Cause }

// UserMessage returns the human-readable cause description.
func (e *SearchError) UserMessage() string { return e.Message }

// GenerationError reports a failed intelligence-package or headline
// generation. The gateway never returns a partially-filled package.
type GenerationError struct {
	Kind    FailureKind
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// UserMessage returns the human-readable cause description.
func (e *GenerationError) UserMessage() string { return e.Message }
