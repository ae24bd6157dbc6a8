package session

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrations holds the goose migrations for the sessions table.
// Apply them with db.Migrate(ctx, pool, session.Migrations, "migrations", ...).
//
//go:embed migrations/*.sql
var Migrations embed.FS

// DB is the subset of pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

// PostgresStore keeps sessions in the sessions table.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create persists a new session.
func (p *PostgresStore) Create(ctx context.Context, s *Session) error {
	if s.ID == "" || s.Token == "" {
		return ErrInvalidSession
	}

	values, err := json.Marshal(s.Values)
	if err != nil {
		return fmt.Errorf("session: failed to marshal values: %w", err)
	}

	_, err = p.db.Exec(ctx, `
		INSERT INTO sessions (id, token, email, data, created_at, last_active_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Token, s.Email, values, s.CreatedAt, s.LastActiveAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("session: insert: %w", err)
	}
	return nil
}

// Get retrieves a session by token.
func (p *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	var (
		s      Session
		values []byte
	)
	err := p.db.QueryRow(ctx, `
		SELECT id, token, email, data, created_at, last_active_at, expires_at
		FROM sessions WHERE token = $1`, token,
	).Scan(&s.ID, &s.Token, &s.Email, &values, &s.CreatedAt, &s.LastActiveAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: select: %w", err)
	}

	if err := json.Unmarshal(values, &s.Values); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal values: %w", err)
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return &s, nil
}

// Update saves the session by ID, including a rotated token.
func (p *PostgresStore) Update(ctx context.Context, s *Session) error {
	if s.ID == "" || s.Token == "" {
		return ErrInvalidSession
	}

	values, err := json.Marshal(s.Values)
	if err != nil {
		return fmt.Errorf("session: failed to marshal values: %w", err)
	}

	tag, err := p.db.Exec(ctx, `
		UPDATE sessions
		SET token = $2, email = $3, data = $4, last_active_at = $5, expires_at = $6
		WHERE id = $1`,
		s.ID, s.Token, s.Email, values, s.LastActiveAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("session: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session by ID.
func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// DeleteExpired removes every session past its expiry.
func (p *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("session: delete expired: %w", err)
	}
	return tag.RowsAffected(), nil
}
