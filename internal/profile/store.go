// Package profile provides durable persistence for user career profiles.
// The wizard depends only on the Store contract; backends are swappable.
package profile

import (
	"context"
	"fmt"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

// Store loads and saves a user's career profile by user identifier.
//
// Load returns (nil, nil) for a user with no saved profile: absence is the
// signal the workflow uses to route to profile creation, not an error.
// Save performs an upsert. A Save failure surfaces as *PersistenceError and
// never silently drops data; the caller keeps the in-memory profile and may
// retry.
type Store interface {
	Load(ctx context.Context, userID string) (*types.UserProfile, error)
	Save(ctx context.Context, userID string, profile *types.UserProfile) error
}

// PersistenceError reports a storage failure during load or save.
type PersistenceError struct {
	Op     string // "load" or "save"
	UserID string
	Cause  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("profile %s failed for user %s: %v", e.Op, e.UserID, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }
