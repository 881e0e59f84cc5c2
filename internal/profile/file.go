package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

// FileStore persists profiles as one JSON document per user under a
// directory. Suitable for local single-node deployments and tests.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("profile directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads the user's profile document. Returns (nil, nil) when the user
// has no saved profile.
func (s *FileStore) Load(_ context.Context, userID string) (*types.UserProfile, error) {
	path, err := s.path(userID)
	if err != nil {
		return nil, &PersistenceError{Op: "load", UserID: userID, Cause: err}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", UserID: userID, Cause: err}
	}

	var p types.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &PersistenceError{Op: "load", UserID: userID, Cause: err}
	}
	return &p, nil
}

// Save upserts the user's profile document. The write is atomic: a temp
// file is renamed over the previous document so a crash never leaves a
// half-written profile.
func (s *FileStore) Save(_ context.Context, userID string, profile *types.UserProfile) error {
	if profile == nil {
		return &PersistenceError{Op: "save", UserID: userID, Cause: fmt.Errorf("profile is nil")}
	}
	path, err := s.path(userID)
	if err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Cause: err}
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Cause: err}
	}

	tmp, err := os.CreateTemp(s.dir, "profile-*.tmp")
	if err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Cause: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &PersistenceError{Op: "save", UserID: userID, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &PersistenceError{Op: "save", UserID: userID, Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &PersistenceError{Op: "save", UserID: userID, Cause: err}
	}
	return nil
}

// path maps a user ID to its document path, rejecting IDs that would
// escape the store directory.
func (s *FileStore) path(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user ID is empty")
	}
	if strings.ContainsAny(userID, "/\\") || strings.Contains(userID, "..") {
		return "", fmt.Errorf("invalid user ID %q", userID)
	}
	return filepath.Join(s.dir, userID+".json"), nil
}
