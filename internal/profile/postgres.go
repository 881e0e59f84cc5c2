package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

// PostgresStore persists profiles as JSONB documents keyed by user ID.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresStore wraps an existing pool (used by the server, which shares
// one pool between the profile store and the user store).
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool exposes the underlying connection pool for co-located stores.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Load fetches the user's profile document. Returns (nil, nil) when no row
// exists for the user.
func (s *PostgresStore) Load(ctx context.Context, userID string) (*types.UserProfile, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", UserID: userID, Cause: err}
	}

	var p types.UserProfile
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, &PersistenceError{Op: "load", UserID: userID, Cause: err}
	}
	return &p, nil
}

// Save upserts the user's profile document.
func (s *PostgresStore) Save(ctx context.Context, userID string, profile *types.UserProfile) error {
	if profile == nil {
		return &PersistenceError{Op: "save", UserID: userID, Cause: fmt.Errorf("profile is nil")}
	}
	doc, err := json.Marshal(profile)
	if err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Cause: err}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, document, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET document = $2, updated_at = NOW()`,
		userID, doc,
	)
	if err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Cause: err}
	}
	return nil
}
