// Package presets stores named rename and sequence configurations in a
// SQLite database so repeated batches can reuse them.
package presets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the SQLite database of presets.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating when needed) the database at dbPath and applies
// pending migrations. ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// each connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save validates p and inserts it, replacing the configuration of an
// existing preset with the same name. Usage counters survive a replace.
func (s *Store) Save(ctx context.Context, p *Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := p.YAML()
	if err != nil {
		return err
	}

	query := `INSERT INTO presets (name, kind, description, config)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			description = excluded.description,
			config = excluded.config,
			updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.ExecContext(ctx, query, p.Name, p.Kind, p.Description, raw); err != nil {
		return fmt.Errorf("save preset %s: %w", p.Name, err)
	}
	return nil
}

const selectColumns = `name, kind, description, config, use_count, last_used, created_at, updated_at`

// Get loads one preset by name.
func (s *Store) Get(ctx context.Context, name string) (*Preset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM presets WHERE name = ?`, name)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get preset %s: %w", name, err)
	}
	return p, nil
}

// List returns presets ordered by name. A non-empty kind filters by kind.
func (s *Store) List(ctx context.Context, kind string) ([]*Preset, error) {
	query := `SELECT ` + selectColumns + ` FROM presets`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []*Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}
	return out, nil
}

// Delete removes a preset.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete preset %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// MarkUsed bumps the usage counter of a preset.
func (s *Store) MarkUsed(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE presets SET use_count = use_count + 1, last_used = CURRENT_TIMESTAMP WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("mark preset %s used: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(sc scanner) (*Preset, error) {
	var (
		p           Preset
		description sql.NullString
		raw         string
		lastUsed    sql.NullTime
	)
	if err := sc.Scan(&p.Name, &p.Kind, &description, &raw, &p.UseCount, &lastUsed, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = description.String
	if lastUsed.Valid {
		p.LastUsed = lastUsed.Time
	}
	if err := p.decode(raw); err != nil {
		return nil, err
	}
	return &p, nil
}
