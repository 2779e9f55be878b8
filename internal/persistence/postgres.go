package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/cityconnect/portal/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS portal_state (
    key TEXT PRIMARY KEY,
    data BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresGateway persists the state blob as a single keyed row in a
// PostgreSQL table. The upsert replaces the row in one statement, so
// readers never observe a partial write.
type PostgresGateway struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresGateway opens a PostgreSQL connection for the given DSN,
// verifies it and creates the state table if needed.
func NewPostgresGateway(dsn string) (*PostgresGateway, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PostgresGateway{DB: db}, nil
}

// Save serializes the state and upserts it under the fixed key.
func (g *PostgresGateway) Save(ctx context.Context, st models.State) error {
	buf, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = g.DB.ExecContext(ctx, `
		INSERT INTO portal_state (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, StateKey, buf)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Load reads the blob for the fixed key. No row means no state has
// ever been saved; an undecodable blob is reported as ErrCorrupt.
func (g *PostgresGateway) Load(ctx context.Context) (models.State, bool, error) {
	var buf []byte
	err := g.DB.QueryRowContext(ctx, `
		SELECT data FROM portal_state WHERE key = $1
	`, StateKey).Scan(&buf)
	if errors.Is(err, sql.ErrNoRows) {
		return models.State{}, false, nil
	}
	if err != nil {
		return models.State{}, false, fmt.Errorf("load state: %w", err)
	}

	var st models.State
	if err := json.Unmarshal(buf, &st); err != nil {
		return models.State{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return st, true, nil
}
