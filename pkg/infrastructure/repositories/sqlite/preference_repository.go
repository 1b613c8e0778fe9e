// Package sqlite persists user preferences in a small SQLite database. Each
// preference is one row holding a key and a JSON payload.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/parcops/stocktrack/pkg/domain/repositories"
)

var _ repositories.PreferenceRepository = (*PreferenceRepository)(nil)

// PreferenceRepository stores preference payloads in a SQLite file.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository opens (or creates) the database at path and
// ensures the preferences table exists.
func NewPreferenceRepository(path string) (*PreferenceRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open preference db %s: %w", path, err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}

	return &PreferenceRepository{db: db}, nil
}

// Save stores the JSON encoding of value under key, replacing any previous
// payload.
func (r *PreferenceRepository) Save(key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}

	const query = `INSERT INTO preferences (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`
	if _, err := r.db.Exec(query, key, payload); err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}

// Load decodes the payload stored under key into dest. A missing key maps to
// ErrPreferenceNotFound so callers can fall back to defaults.
func (r *PreferenceRepository) Load(key string, dest any) error {
	var payload []byte
	err := r.db.QueryRow(`SELECT payload FROM preferences WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("load preference %s: %w", key, repositories.ErrPreferenceNotFound)
	}
	if err != nil {
		return fmt.Errorf("load preference %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("load preference %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (r *PreferenceRepository) Close() error {
	return r.db.Close()
}
