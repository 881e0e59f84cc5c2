package wizard

import (
	"context"
	"log"
	"sync"

	"github.com/okgoogle13/resume-copilot/internal/profile"
	"github.com/okgoogle13/resume-copilot/internal/types"
)

// Gateway is the slice of the AI gateway the engine depends on.
type Gateway interface {
	AnalyzeJobDescription(ctx context.Context, text string) (*types.JobAnalysis, error)
	SearchJobs(ctx context.Context, query string) ([]types.Job, error)
	GenerateIntelligencePackage(ctx context.Context, p *types.UserProfile, a *types.JobAnalysis) (*types.IntelligencePackage, error)
	GenerateHeadlineAlternatives(ctx context.Context, p *types.UserProfile, a *types.JobAnalysis) ([]string, error)
}

// Engine owns one session and executes the effects its transitions emit.
// Effects run outside the session lock; their completion events pass back
// through Reduce, where the generation check discards stale results.
type Engine struct {
	mu      sync.Mutex
	session Session

	gateway Gateway
	store   profile.Store
}

// NewEngine creates an engine over a fresh session.
func NewEngine(gw Gateway, store profile.Store) *Engine {
	return &Engine{
		session: NewSession(),
		gateway: gw,
		store:   store,
	}
}

// Snapshot returns a deep copy of the current session.
func (e *Engine) Snapshot() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone()
}

// Dispatch applies an event, runs any resulting effects to completion, and
// returns the settled session. Effects block on network I/O; callers cancel
// through ctx. Concurrent dispatches are safe: the reducer runs under the
// lock and stale completions are discarded by generation.
func (e *Engine) Dispatch(ctx context.Context, ev Event) Session {
	effects := e.apply(ev)
	for len(effects) > 0 {
		var next []Effect
		for _, eff := range effects {
			done := e.execute(ctx, eff)
			if done == nil {
				continue
			}
			next = append(next, e.apply(done)...)
		}
		effects = next
	}
	return e.Snapshot()
}

func (e *Engine) apply(ev Event) []Effect {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, effects := Reduce(e.session, ev)
	e.session = next
	return effects
}

// execute performs one effect and returns its completion event.
func (e *Engine) execute(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case LoadProfile:
		p, err := e.store.Load(ctx, eff.UserID)
		if err != nil {
			log.Printf("[WIZARD] profile load failed: %v", err)
		}
		return ProfileLoadSettled{Gen: eff.Gen, Profile: p, Err: err}
	case SaveProfile:
		err := e.store.Save(ctx, eff.UserID, eff.Profile)
		if err != nil {
			log.Printf("[WIZARD] profile save failed: %v", err)
		}
		return ProfileSaveSettled{Gen: eff.Gen, Err: err}
	case SearchJobs:
		results, err := e.gateway.SearchJobs(ctx, eff.Query)
		if err != nil {
			log.Printf("[WIZARD] job search failed: %v", err)
		}
		return SearchSettled{Gen: eff.Gen, Results: results, Err: err}
	case AnalyzeJob:
		analysis, err := e.gateway.AnalyzeJobDescription(ctx, eff.Text)
		if err != nil {
			log.Printf("[WIZARD] job analysis failed: %v", err)
		}
		return AnalysisSettled{Gen: eff.Gen, Analysis: analysis, Err: err}
	case GeneratePackage:
		pkg, err := e.gateway.GenerateIntelligencePackage(ctx, eff.Profile, eff.Analysis)
		if err != nil {
			log.Printf("[WIZARD] generation failed: %v", err)
		}
		return GenerationSettled{Gen: eff.Gen, Package: pkg, Err: err}
	case SuggestHeadlines:
		headlines, err := e.gateway.GenerateHeadlineAlternatives(ctx, eff.Profile, eff.Analysis)
		if err != nil {
			log.Printf("[WIZARD] headline suggestion failed: %v", err)
		}
		return HeadlinesSettled{Gen: eff.Gen, Headlines: headlines, Err: err}
	default:
		return nil
	}
}
