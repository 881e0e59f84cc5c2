package server

import (
	"net/http"

	"github.com/okgoogle13/resume-copilot/internal/rendering"
	"github.com/okgoogle13/resume-copilot/internal/types"
)

// handleExport renders a generated document. Query parameters: doc selects
// the document type (default resume), format selects html or pdf (default
// html). The theme is the one chosen in the session.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	session := entry.engine.Snapshot()
	if session.Package == nil {
		http.Error(w, "No generated documents in this session", http.StatusConflict)
		return
	}

	doc := types.DocumentType(r.URL.Query().Get("doc"))
	if doc == "" {
		doc = types.DocumentResume
	}
	valid := false
	for _, d := range types.AllDocumentTypes() {
		if d == doc {
			valid = true
			break
		}
	}
	if !valid {
		http.Error(w, "Unknown document type", http.StatusBadRequest)
		return
	}

	html, err := s.renderer.Render(doc, session.Template, session.Package)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	case "pdf":
		pdf, err := rendering.RenderPDF(r.Context(), html)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+string(doc)+`.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	default:
		http.Error(w, "Unknown format", http.StatusBadRequest)
	}
}

// handleExportBundle renders every document for the session as HTML and
// returns them in one response.
func (s *Server) handleExportBundle(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	session := entry.engine.Snapshot()
	if session.Package == nil {
		http.Error(w, "No generated documents in this session", http.StatusConflict)
		return
	}

	bundle, err := s.renderer.RenderBundle(r.Context(), session.Template, session.Package)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}
