// Package types defines the core data structures shared across the wizard,
// gateway, store, and rendering layers. JSON tags double as the persisted
// document format and the AI wire format.
package types

// Education is a single education entry on a profile.
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationYear string `json:"graduationYear"`
}

// SkillCategory groups related skills under a category label.
type SkillCategory struct {
	Category   string   `json:"category"`
	SkillsList []string `json:"skillsList"`
}

// Experience is a single work-history entry. Entries have no identity
// beyond their position in the profile's experience slice.
type Experience struct {
	JobTitle         string   `json:"jobTitle"`
	Organization     string   `json:"organization"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Achievement      string   `json:"achievement"`
}

// Certification is a formal credential entry.
type Certification struct {
	Name        string `json:"name"`
	IssuingBody string `json:"issuingBody"`
	Date        string `json:"date"`
}

// Training is a professional-development entry.
type Training struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Year     string `json:"year"`
}

// CertificationsAndDevelopment holds credentials and trainings.
type CertificationsAndDevelopment struct {
	Certifications []Certification `json:"certifications"`
	Trainings      []Training      `json:"trainings"`
}

// UserProfile is the durable career record. All slices are insertion-ordered
// and may be empty.
type UserProfile struct {
	FullName       string                       `json:"fullName"`
	ResumeHeadline string                       `json:"resumeHeadline"`
	Phone          string                       `json:"phone"`
	Email          string                       `json:"email"`
	Location       string                       `json:"location"`
	CareerSummary  string                       `json:"careerSummary"`
	Education      []Education                  `json:"education"`
	Skills         []SkillCategory              `json:"skills"`
	Experience     []Experience                 `json:"experience"`
	Development    CertificationsAndDevelopment `json:"certificationsAndDevelopment"`
}

// SeedProfile returns an empty profile pre-filled from an identity's
// display name and email, used when a user logs in for the first time.
func SeedProfile(fullName, email string) *UserProfile {
	return &UserProfile{
		FullName:   fullName,
		Email:      email,
		Education:  []Education{},
		Skills:     []SkillCategory{},
		Experience: []Experience{},
		Development: CertificationsAndDevelopment{
			Certifications: []Certification{},
			Trainings:      []Training{},
		},
	}
}

// Clone returns a deep copy of the profile. The wizard hands copies to the
// store and the gateway so no caller shares mutable slices with the session.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.Education = append([]Education(nil), p.Education...)
	out.Skills = make([]SkillCategory, len(p.Skills))
	for i, s := range p.Skills {
		out.Skills[i] = SkillCategory{
			Category:   s.Category,
			SkillsList: append([]string(nil), s.SkillsList...),
		}
	}
	out.Experience = make([]Experience, len(p.Experience))
	for i, e := range p.Experience {
		out.Experience[i] = e
		out.Experience[i].Responsibilities = append([]string(nil), e.Responsibilities...)
	}
	out.Development.Certifications = append([]Certification(nil), p.Development.Certifications...)
	out.Development.Trainings = append([]Training(nil), p.Development.Trainings...)
	return &out
}

// HasCareerHistory reports whether the profile carries enough material for
// headline suggestions: a non-empty career summary and at least one
// experience entry.
func (p *UserProfile) HasCareerHistory() bool {
	if p == nil {
		return false
	}
	return p.CareerSummary != "" && len(p.Experience) > 0
}
