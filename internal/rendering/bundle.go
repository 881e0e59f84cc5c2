package rendering

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

// Bundle holds every generated document rendered with a single theme.
type Bundle struct {
	Theme     string
	Documents map[types.DocumentType]string
}

// RenderBundle renders the resume, cover letter and KSC responses
// concurrently and returns them keyed by document type.
func (r *Renderer) RenderBundle(ctx context.Context, theme string, pkg *types.IntelligencePackage) (*Bundle, error) {
	bundle := &Bundle{
		Theme:     theme,
		Documents: make(map[types.DocumentType]string, len(types.AllDocumentTypes())),
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for _, doc := range types.AllDocumentTypes() {
		g.Go(func() error {
			html, err := r.Render(doc, theme, pkg)
			if err != nil {
				return err
			}
			mu.Lock()
			bundle.Documents[doc] = html
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}
