package cache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OpKind tags what a queued operation changes
type OpKind string

const (
	OpTask   OpKind = "task"   // completion flag and/or media reference
	OpRename OpKind = "rename" // team display name
)

// Status is the reconciliation state of a queued operation
type Status string

const (
	StatusPending Status = "pending" // applied locally, not yet sent
	StatusSynced  Status = "synced"  // confirmed by the server
	StatusFailed  Status = "failed"  // last send attempt failed; retried on next flush
)

// Op is one locally applied change waiting for the server
type Op struct {
	ID        string
	TeamID    string
	Kind      OpKind
	TaskID    string
	Completed *bool
	Image     *string
	ImageSet  bool
	Name      string
	Status    Status
	CreatedAt time.Time
}

// NewTaskOp builds a queued task update
func NewTaskOp(teamID, taskID string, completed *bool, image *string, imageSet bool) Op {
	return Op{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		Kind:      OpTask,
		TaskID:    taskID,
		Completed: completed,
		Image:     image,
		ImageSet:  imageSet,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
}

// NewRenameOp builds a queued rename
func NewRenameOp(teamID, name string) Op {
	return Op{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		Kind:      OpRename,
		Name:      name,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
}

// Enqueue stores an operation in the queue
func (c *Cache) Enqueue(op Op) error {
	var completed sql.NullBool
	if op.Completed != nil {
		completed = sql.NullBool{Bool: *op.Completed, Valid: true}
	}
	var image sql.NullString
	if op.Image != nil {
		image = sql.NullString{String: *op.Image, Valid: true}
	}

	_, err := c.db.Exec(`
		INSERT INTO pending_ops
			(id, team_id, kind, task_id, completed, image, image_set, name, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		op.ID, op.TeamID, string(op.Kind), op.TaskID,
		completed, image, op.ImageSet, op.Name,
		string(op.Status), op.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue op: %w", err)
	}
	return nil
}

// Unsynced returns pending and failed operations in submission order
func (c *Cache) Unsynced() ([]Op, error) {
	rows, err := c.db.Query(`
		SELECT id, team_id, kind, task_id, completed, image, image_set, name, status, created_at
		FROM pending_ops
		WHERE status IN ('pending', 'failed')
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ops: %w", err)
	}
	defer rows.Close()

	var ops []Op
	for rows.Next() {
		var (
			op        Op
			kind      string
			status    string
			completed sql.NullBool
			image     sql.NullString
			createdAt string
		)
		if err := rows.Scan(&op.ID, &op.TeamID, &kind, &op.TaskID,
			&completed, &image, &op.ImageSet, &op.Name, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan op: %w", err)
		}
		op.Kind = OpKind(kind)
		op.Status = Status(status)
		if completed.Valid {
			v := completed.Bool
			op.Completed = &v
		}
		if image.Valid {
			v := image.String
			op.Image = &v
		}
		op.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// setStatus updates an op's reconciliation state
func (c *Cache) setStatus(id string, status Status) error {
	_, err := c.db.Exec(
		`UPDATE pending_ops SET status = ? WHERE id = ?`, string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update op status: %w", err)
	}
	return nil
}

// MarkSynced records that the server confirmed the operation
func (c *Cache) MarkSynced(id string) error {
	return c.setStatus(id, StatusSynced)
}

// MarkFailed records that the last send attempt failed
func (c *Cache) MarkFailed(id string) error {
	return c.setStatus(id, StatusFailed)
}

// PruneSynced drops confirmed operations from the queue
func (c *Cache) PruneSynced() error {
	_, err := c.db.Exec(`DELETE FROM pending_ops WHERE status = 'synced'`)
	return err
}
