package types

// JobAnalysis is the structured deconstruction of a single job posting,
// produced by the gateway and editable by the user before generation.
type JobAnalysis struct {
	JobTitle                   string   `json:"jobTitle"`
	CompanyName                string   `json:"companyName"`
	Keywords                   []string `json:"keywords"`
	MinimumRequirements        []string `json:"minimumRequirements"`
	KeyResponsibilitiesAndKpis []string `json:"keyResponsibilitiesAndKpis"`
	ValuedOutcomes             []string `json:"valuedOutcomes"`
	RoleSpecificHardSkills     []string `json:"roleSpecificHardSkills"`
	CompanyNicheAndValues      []string `json:"companyNicheAndValues"`
	DesirableAttributes        []string `json:"desirableAttributes"`
}

// Clone returns a deep copy of the analysis.
func (a *JobAnalysis) Clone() *JobAnalysis {
	if a == nil {
		return nil
	}
	out := *a
	out.Keywords = append([]string(nil), a.Keywords...)
	out.MinimumRequirements = append([]string(nil), a.MinimumRequirements...)
	out.KeyResponsibilitiesAndKpis = append([]string(nil), a.KeyResponsibilitiesAndKpis...)
	out.ValuedOutcomes = append([]string(nil), a.ValuedOutcomes...)
	out.RoleSpecificHardSkills = append([]string(nil), a.RoleSpecificHardSkills...)
	out.CompanyNicheAndValues = append([]string(nil), a.CompanyNicheAndValues...)
	out.DesirableAttributes = append([]string(nil), a.DesirableAttributes...)
	return &out
}

// Normalize replaces nil list fields with empty slices so a validated
// analysis always carries all seven categorical lists.
func (a *JobAnalysis) Normalize() {
	if a.Keywords == nil {
		a.Keywords = []string{}
	}
	if a.MinimumRequirements == nil {
		a.MinimumRequirements = []string{}
	}
	if a.KeyResponsibilitiesAndKpis == nil {
		a.KeyResponsibilitiesAndKpis = []string{}
	}
	if a.ValuedOutcomes == nil {
		a.ValuedOutcomes = []string{}
	}
	if a.RoleSpecificHardSkills == nil {
		a.RoleSpecificHardSkills = []string{}
	}
	if a.CompanyNicheAndValues == nil {
		a.CompanyNicheAndValues = []string{}
	}
	if a.DesirableAttributes == nil {
		a.DesirableAttributes = []string{}
	}
}

// InsertAt inserts item into list at position i, clamped to the list bounds.
// Edits are positional: entries have no identity beyond their index.
func InsertAt(list []string, i int, item string) []string {
	if i < 0 {
		i = 0
	}
	if i > len(list) {
		i = len(list)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, item)
	out = append(out, list[i:]...)
	return out
}

// RemoveAt deletes the entry at position i, returning the list unchanged
// when i is out of range.
func RemoveAt(list []string, i int) []string {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out
}

// Job is one job-search result.
type Job struct {
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
	Location       string `json:"location"`
	JobDescription string `json:"jobDescription"`
}
