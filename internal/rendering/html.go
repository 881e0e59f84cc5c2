package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Theme identifiers for the printable templates.
const (
	ThemeModern  = "modern"
	ThemeClassic = "classic"
	ThemeCompact = "compact"
)

// KnownTheme reports whether id names a shipped theme.
func KnownTheme(id string) bool {
	switch id {
	case ThemeModern, ThemeClassic, ThemeCompact:
		return true
	}
	return false
}

// Renderer renders the generation results into themed HTML documents.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded document templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("documents").Funcs(template.FuncMap{
		"paragraphs": splitParagraphs,
	}).ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse document templates", Cause: err}
	}
	return &Renderer{templates: tmpl}, nil
}

// documentData is the payload handed to every document template.
type documentData struct {
	Style       template.CSS
	Theme       string
	Resume      *types.UserProfile
	Evaluation  *types.Evaluation
	CoverLetter string
	KSC         []types.KSCResponse
}

// Render produces the HTML for one document type. The renderer receives
// exactly the tailored resume, cover letter, and KSC data plus the chosen
// theme id; unknown themes fall back to the modern theme.
func (r *Renderer) Render(doc types.DocumentType, theme string, pkg *types.IntelligencePackage) (string, error) {
	if pkg == nil {
		return "", &TemplateError{Message: "no generated package to render"}
	}
	if !KnownTheme(theme) {
		theme = ThemeModern
	}

	var name string
	switch doc {
	case types.DocumentResume:
		name = "resume.tmpl"
	case types.DocumentCoverLetter:
		name = "cover_letter.tmpl"
	case types.DocumentKSC:
		name = "ksc.tmpl"
	default:
		return "", &TemplateError{Message: fmt.Sprintf("unknown document type %q", doc)}
	}

	data := documentData{
		Style:       themeStyles[theme],
		Theme:       theme,
		Resume:      &pkg.TailoredResume,
		Evaluation:  &pkg.Evaluation,
		CoverLetter: pkg.CoverLetter,
		KSC:         pkg.KSCResponses,
	}

	var out strings.Builder
	if err := r.templates.ExecuteTemplate(&out, name, data); err != nil {
		return "", &TemplateError{Message: fmt.Sprintf("failed to execute %s", name), Cause: err}
	}
	return out.String(), nil
}

// splitParagraphs breaks free text on blank lines for template iteration.
func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
