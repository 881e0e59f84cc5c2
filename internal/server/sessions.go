package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okgoogle13/resume-copilot/internal/ingest"
	"github.com/okgoogle13/resume-copilot/internal/profile"
	"github.com/okgoogle13/resume-copilot/internal/server/middleware"
	"github.com/okgoogle13/resume-copilot/internal/types"
	"github.com/okgoogle13/resume-copilot/internal/wizard"
)

// sessionEntry ties a wizard engine to its owning account.
type sessionEntry struct {
	id        uuid.UUID
	userID    uuid.UUID
	engine    *wizard.Engine
	createdAt time.Time
}

// SessionManager owns the live wizard sessions. Sessions are in-memory;
// the profile they produce is what persists.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry

	gateway wizard.Gateway
	store   profile.Store
}

// NewSessionManager creates an empty manager over the given dependencies.
func NewSessionManager(gw wizard.Gateway, store profile.Store) *SessionManager {
	return &SessionManager{
		sessions: make(map[uuid.UUID]*sessionEntry),
		gateway:  gw,
		store:    store,
	}
}

// Create starts a session for the user and signs their identity in, which
// triggers the profile load.
func (m *SessionManager) Create(ctx context.Context, user *types.User) (uuid.UUID, wizard.Session) {
	entry := &sessionEntry{
		id:        uuid.New(),
		userID:    user.ID,
		engine:    wizard.NewEngine(m.gateway, m.store),
		createdAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.sessions[entry.id] = entry
	m.mu.Unlock()

	session := entry.engine.Dispatch(ctx, wizard.AuthChanged{Identity: &wizard.Identity{
		UserID:      user.ID.String(),
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}})
	return entry.id, session
}

// Get returns the session entry if it exists and belongs to the user.
func (m *SessionManager) Get(sessionID, userID uuid.UUID) (*sessionEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.sessions[sessionID]
	if !ok || entry.userID != userID {
		return nil, &ErrSessionNotFound{SessionID: sessionID}
	}
	return entry, nil
}

// Delete removes a session.
func (m *SessionManager) Delete(sessionID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[sessionID]
	if !ok || entry.userID != userID {
		return &ErrSessionNotFound{SessionID: sessionID}
	}
	delete(m.sessions, sessionID)
	return nil
}

// sessionView is the JSON shape of a session snapshot.
type sessionView struct {
	ID            string                      `json:"id"`
	Step          wizard.Step                 `json:"step"`
	Identity      *wizard.Identity            `json:"identity,omitempty"`
	Profile       *types.UserProfile          `json:"profile,omitempty"`
	SearchResults []types.Job                 `json:"searchResults,omitempty"`
	Searching     bool                        `json:"searching"`
	Analysis      *types.JobAnalysis          `json:"analysis,omitempty"`
	Template      string                      `json:"template"`
	Package       *types.IntelligencePackage `json:"package,omitempty"`
	HeadlineIdeas []string                    `json:"headlineIdeas,omitempty"`
	ErrorMessage  string                      `json:"errorMessage,omitempty"`
	Busy          bool                        `json:"busy"`
}

func newSessionView(id uuid.UUID, s wizard.Session) sessionView {
	return sessionView{
		ID:            id.String(),
		Step:          s.Step,
		Identity:      s.Identity,
		Profile:       s.Profile,
		SearchResults: s.SearchResults,
		Searching:     s.Searching,
		Analysis:      s.Analysis,
		Template:      s.Template,
		Package:       s.Package,
		HeadlineIdeas: s.HeadlineIdeas,
		ErrorMessage:  s.ErrorMessage,
		Busy:          s.AIInFlight || s.ProfileLoading,
	}
}

// eventRequest is the wire form of a wizard event. Type selects the event;
// the remaining fields are read per type.
type eventRequest struct {
	Type        string              `json:"type"`
	Profile     *types.UserProfile  `json:"profile,omitempty"`
	Query       string              `json:"query,omitempty"`
	Description string              `json:"description,omitempty"`
	URL         string              `json:"url,omitempty"`
	Analysis    *types.JobAnalysis  `json:"analysis,omitempty"`
	ThemeID     string              `json:"themeId,omitempty"`
	Index       int                 `json:"index"`
}

// decodeEvent maps a wire event to a wizard event. Events that exist only
// on the wire (job URL submission) are resolved by the caller first.
func decodeEvent(req *eventRequest) (wizard.Event, error) {
	switch req.Type {
	case "profileSubmitted":
		if req.Profile == nil {
			return nil, &ErrValidation{Field: "profile", Message: "required"}
		}
		return wizard.ProfileSubmitted{Profile: req.Profile}, nil
	case "searchRequested":
		return wizard.SearchRequested{Query: req.Query}, nil
	case "jobChosen":
		return wizard.JobChosen{Description: req.Description}, nil
	case "analysisEdited":
		if req.Analysis == nil {
			return nil, &ErrValidation{Field: "analysis", Message: "required"}
		}
		return wizard.AnalysisEdited{Updated: req.Analysis}, nil
	case "analysisConfirmed":
		return wizard.AnalysisConfirmed{}, nil
	case "templateChosen":
		return wizard.TemplateChosen{ThemeID: req.ThemeID}, nil
	case "generationConfirmed":
		return wizard.GenerationConfirmed{}, nil
	case "headlinesRequested":
		return wizard.HeadlinesRequested{}, nil
	case "headlineSwapped":
		return wizard.HeadlineSwapped{Index: req.Index}, nil
	case "back":
		return wizard.BackRequested{}, nil
	case "startOver":
		return wizard.StartOver{}, nil
	case "signOut":
		return wizard.SignOut{}, nil
	default:
		return nil, &ErrValidation{Field: "type", Message: fmt.Sprintf("unknown event type %q", req.Type)}
	}
}

// handleCreateSession starts a wizard session for the authenticated user.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := s.userService.Get(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	id, session := s.sessions.Create(r.Context(), user)
	writeJSON(w, http.StatusCreated, newSessionView(id, session))
}

// handleGetSession returns the current session snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(entry.id, entry.engine.Snapshot()))
}

// handleDeleteSession discards a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}
	if err := s.sessions.Delete(sessionID, userID); err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionEvent applies one wizard event and returns the settled
// session. Job URL submissions are fetched and cleaned before entering the
// machine as a plain job description.
func (s *Server) handleSessionEvent(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Type == "jobURLSubmitted" {
		opts := ingest.DefaultOptions()
		opts.UseBrowser = s.useBrowser
		text, err := ingest.JobDescription(r.Context(), req.URL, opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		session := entry.engine.Dispatch(r.Context(), wizard.JobChosen{Description: text})
		writeJSON(w, http.StatusOK, newSessionView(entry.id, session))
		return
	}

	ev, err := decodeEvent(&req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	session := entry.engine.Dispatch(r.Context(), ev)
	writeJSON(w, http.StatusOK, newSessionView(entry.id, session))
}

// sessionFromRequest authorizes and resolves the session named in the path.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*sessionEntry, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return nil, false
	}

	entry, err := s.sessions.Get(sessionID, userID)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return nil, false
	}
	return entry, true
}
