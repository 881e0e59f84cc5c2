package schemas

// JobAnalysis returns the schema for the job-description analysis exchange:
// title, company, and the seven categorical string lists. All nine fields
// are required; the lists may be empty but never absent.
func JobAnalysis() *Schema {
	return &Schema{
		Name: "JobAnalysis",
		Fields: []Field{
			Str("jobTitle", `The title of the job role, e.g., "Senior Software Engineer".`),
			Str("companyName", "The name of the company hiring."),
			StrList("keywords", "Specific important terms from the job description related to technical skills, desirable traits, and responsibilities. Crucial for ATS scanning."),
			StrList("minimumRequirements", `Essential, must-have criteria: required years of experience, specific qualifications or degrees, necessary software proficiencies.`),
			StrList("keyResponsibilitiesAndKpis", "The main duties and responsibilities of the role, including any Key Performance Indicators mentioned."),
			StrList("valuedOutcomes", `The desired results or goals the company expects for this role, such as "improve system efficiency".`),
			StrList("roleSpecificHardSkills", `Specific, teachable, measurable technical abilities required, like "JavaScript" or "QuickBooks".`),
			StrList("companyNicheAndValues", `Terms or phrases related to the company's industry, mission, or values.`),
			StrList("desirableAttributes", `"Nice-to-have" skills or personality traits mentioned.`),
		},
	}
}

// JobSearchResults returns the schema for the job-search exchange: an array
// of up to 5 results, each with all four fields populated.
func JobSearchResults() *Schema {
	item := ObjList("jobs", "",
		Str("jobTitle", ""),
		Str("companyName", ""),
		Str("location", ""),
		Str("jobDescription", "A detailed summary of the job, including responsibilities and qualifications."),
	)
	item.MaxItems = 5
	return &Schema{
		Name:  "JobSearchResults",
		Array: true,
		Items: &item,
	}
}

// HeadlineList returns the schema for headline suggestions: exactly 3
// one-line headline strings.
func HeadlineList() *Schema {
	item := StrList("headlines", "Three alternative professional resume headlines.")
	item.MinItems = 3
	item.MaxItems = 3
	return &Schema{
		Name:  "HeadlineList",
		Array: true,
		Items: &item,
	}
}

// userProfileFields declares the tailored-resume object shape, mirroring
// types.UserProfile.
func userProfileFields() []Field {
	return []Field{
		Str("fullName", ""),
		Str("resumeHeadline", "High-impact one-line title targeting the job."),
		Str("phone", ""),
		Str("email", ""),
		Str("location", ""),
		Str("careerSummary", "A results-driven narrative rewritten to target the job title and company values."),
		ObjList("education", "",
			Str("degree", ""),
			Str("institution", ""),
			Str("location", ""),
			Str("graduationYear", ""),
		),
		ObjList("skills", "",
			Str("category", ""),
			StrList("skillsList", ""),
		),
		ObjList("experience", "",
			Str("jobTitle", ""),
			Str("organization", ""),
			Str("location", ""),
			Str("startDate", ""),
			Str("endDate", ""),
			Str("description", ""),
			StrList("responsibilities", "Bullet points rewritten for ATS and action-impact."),
			Str("achievement", "One standout, data-driven career win for this role."),
		),
		Obj("certificationsAndDevelopment", "",
			Optional(ObjList("certifications", "",
				Str("name", ""),
				Str("issuingBody", ""),
				Str("date", ""),
			)),
			Optional(ObjList("trainings", "",
				Str("name", ""),
				Str("provider", ""),
				Str("year", ""),
			)),
		),
	}
}

// evaluationFields declares the audit object shape: overall score, the four
// fixed breakdown components, feedback, and quantification suggestions.
func evaluationFields() []Field {
	component := func(name, desc string) Field {
		return Obj(name, desc,
			Score("score", "An integer score from 0 to 100."),
			Str("analysis", ""),
		)
	}
	suggestions := Optional(ObjList("quantificationSuggestions",
		"Improvements for experience descriptions to be more results-oriented. Use brackets like [Managed a team] to highlight changes.",
		Str("originalText", ""),
		Str("suggestedRewrite", ""),
	))
	return []Field{
		Score("overallScore", "A score from 0 to 100."),
		Str("overallAnalysis", ""),
		Obj("scoreBreakdown", "",
			component("hardSkillsMatch", ""),
			component("softSkillsAndVerbsMatch", ""),
			component("quantifiableAchievements", ""),
			component("atsReadabilityAndFormatting", ""),
		),
		StrList("actionableFeedback", "At least 3 specific, actionable improvement points."),
		suggestions,
	}
}

// IntelligencePackage returns the schema for the full generation exchange.
// Every top-level field is mandatory: the tailored resume, the evaluation,
// 3 headline alternatives, the cover letter, and 3-5 KSC pairs.
func IntelligencePackage() *Schema {
	headlines := StrList("headlineSuggestions",
		"Exactly 3 alternative professional resume headlines. Short, specific, keyword-aligned.")
	headlines.MinItems = 3
	headlines.MaxItems = 3
	ksc := ObjList("kscResponses",
		"Tailored responses for the top 3-5 key selection criteria, each using the STAR method.",
		Str("criteria", "The specific selection criteria from the job description."),
		Str("response", "A tailored STAR-method response demonstrating how the candidate meets this criteria."),
	)
	ksc.MinItems = 3
	ksc.MaxItems = 5
	return &Schema{
		Name: "IntelligencePackage",
		Fields: []Field{
			Obj("tailoredResume", "The fully rewritten resume. Do not omit any sections.", userProfileFields()...),
			Obj("evaluation", "", evaluationFields()...),
			headlines,
			Str("coverLetter", "A highly tailored, professional cover letter (approx 300-400 words) addressed to the hiring manager."),
			ksc,
		},
	}
}
