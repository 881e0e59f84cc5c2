package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okgoogle13/resume-copilot/internal/types"
)

// UserStore persists user accounts. Lookups that find nothing return
// (nil, nil); credentials travel separately from the public User struct.
type UserStore interface {
	CreateUser(ctx context.Context, user *types.User, passwordHash string) error
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// MemoryUserStore keeps accounts in memory. Used when no database is
// configured; accounts do not survive a restart.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*memoryUser
	byEmail map[string]uuid.UUID
}

type memoryUser struct {
	user         types.User
	passwordHash string
}

// NewMemoryUserStore creates an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[uuid.UUID]*memoryUser),
		byEmail: make(map[string]uuid.UUID),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemoryUserStore) CreateUser(_ context.Context, user *types.User, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, exists := s.byEmail[email]; exists {
		return fmt.Errorf("email already exists: %s", user.Email)
	}
	s.byID[user.ID] = &memoryUser{user: *user, passwordHash: passwordHash}
	s.byEmail[email] = user.ID
	return nil
}

func (s *MemoryUserStore) GetUser(_ context.Context, id uuid.UUID) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	user := entry.user
	return &user, nil
}

func (s *MemoryUserStore) GetUserByEmail(_ context.Context, email string) (*types.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, "", nil
	}
	entry := s.byID[id]
	user := entry.user
	return &user, entry.passwordHash, nil
}

func (s *MemoryUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[normalizeEmail(email)]
	return ok, nil
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	entry.passwordHash = passwordHash
	entry.user.UpdatedAt = time.Now().UTC()
	return nil
}

// PostgresUserStore persists accounts in the users table.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a store over an existing connection pool.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, user *types.User, passwordHash string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, display_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.DisplayName, normalizeEmail(user.Email), passwordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	var user types.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, display_name, email, created_at, updated_at
		FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.DisplayName, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (*types.User, string, error) {
	var (
		user types.User
		hash string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, display_name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1`, normalizeEmail(email)).
		Scan(&user.ID, &user.DisplayName, &user.Email, &hash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, hash, nil
}

func (s *PostgresUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, normalizeEmail(email)).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (s *PostgresUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}
