package cache

// migrate runs cache database migrations
func (c *Cache) migrate() error {
	migrations := []string{
		migrationSnapshot,
		migrationOps,
	}

	for _, m := range migrations {
		if _, err := c.db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

const migrationSnapshot = `
CREATE TABLE IF NOT EXISTS team_snapshot (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);
`

const migrationOps = `
CREATE TABLE IF NOT EXISTS pending_ops (
    id TEXT PRIMARY KEY,
    team_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    task_id TEXT,
    completed INTEGER,
    image TEXT,
    image_set INTEGER NOT NULL DEFAULT 0,
    name TEXT,
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pending_ops_status ON pending_ops(status, created_at);
`
