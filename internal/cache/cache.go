package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minhokang/busanhunt/internal/model"
	_ "modernc.org/sqlite"
)

// Cache is the client-local copy of the team record plus the queue of
// operations not yet confirmed by the server. The UI always reads and writes
// the cache first; sync is fire-and-forget afterwards.
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the default cache path (~/.busanhunt/cache.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".busanhunt", "cache.db"), nil
}

// Open opens or creates the cache database
func Open(path string) (*Cache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	c := &Cache{db: db}

	if err := c.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return c, nil
}

// OpenDefault opens the cache at the default path
func OpenDefault() (*Cache, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Close closes the cache database
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveTeam stores the team record as the current local snapshot
func (c *Cache) SaveTeam(team *model.Team) error {
	data, err := json.Marshal(team)
	if err != nil {
		return fmt.Errorf("failed to marshal team: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO team_snapshot (id, data, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			data = excluded.data,
			fetched_at = excluded.fetched_at`,
		team.ID, string(data), time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save team snapshot: %w", err)
	}
	return nil
}

// LoadTeam returns the cached team record, or nil when nothing is cached
func (c *Cache) LoadTeam(teamID string) (*model.Team, error) {
	var data string
	err := c.db.QueryRow(
		`SELECT data FROM team_snapshot WHERE id = ?`, teamID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load team snapshot: %w", err)
	}

	var team model.Team
	if err := json.Unmarshal([]byte(data), &team); err != nil {
		return nil, fmt.Errorf("failed to parse team snapshot: %w", err)
	}
	return &team, nil
}

// Clear drops the snapshot and the op queue (logout)
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM team_snapshot`); err != nil {
		return err
	}
	_, err := c.db.Exec(`DELETE FROM pending_ops`)
	return err
}
