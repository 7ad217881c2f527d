// Package preset stores named generator configurations in SQLite.
package preset

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/mathgen/pkg/params"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no preset has the requested name.
var ErrNotFound = errors.New("preset: not found")

const schema = `
CREATE TABLE IF NOT EXISTS presets (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	generator   TEXT NOT NULL,
	config_json TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
`

// Record is a stored preset.
type Record struct {
	ID         string
	Name       string
	Generator  string
	Parameters params.Parameters
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store manages presets in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("preset: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("preset: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preset: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores p under name, replacing any preset of the same name. The
// id and creation time of a replaced preset are kept.
func (s *Store) Save(name string, p params.Parameters) (Record, error) {
	if name == "" {
		return Record{}, fmt.Errorf("preset: empty name")
	}
	cfg, err := params.Marshal(params.Encode(p), params.FormatJSON)
	if err != nil {
		return Record{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.Exec(
		`INSERT INTO presets (id, name, generator, config_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			generator = excluded.generator,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at`,
		uuid.New().String(), name, p.Kind.String(), string(cfg), now, now,
	)
	if err != nil {
		return Record{}, fmt.Errorf("preset: save %q: %w", name, err)
	}
	return s.Get(name)
}

// Get returns the preset called name.
func (s *Store) Get(name string) (Record, error) {
	row := s.db.QueryRow(
		`SELECT id, name, generator, config_json, created_at, updated_at
		 FROM presets WHERE name = ?`, name,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Record{}, fmt.Errorf("preset: get %q: %w", name, err)
	}
	return rec, nil
}

// List returns every preset ordered by name.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, name, generator, config_json, created_at, updated_at
		 FROM presets ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("preset: list: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}
	return out, nil
}

// Delete removes the preset called name.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("preset: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("preset: delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var cfg, created, updated string
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Generator, &cfg, &created, &updated); err != nil {
		return Record{}, err
	}

	raw, err := params.Unmarshal([]byte(cfg), params.FormatJSON)
	if err != nil {
		return Record{}, fmt.Errorf("decode %q: %w", rec.Name, err)
	}
	rec.Parameters = params.Resolve(raw)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return rec, nil
}
