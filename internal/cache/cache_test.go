package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhokang/busanhunt/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSnapshotRoundtrip(t *testing.T) {
	c := newTestCache(t)

	url := "/uploads/a.jpg"
	team := &model.Team{ID: "team1", Name: "Team 1", Password: "busan1", Tasks: model.Catalog()}
	team.Tasks[0].Completed = true
	team.Tasks[0].Image = &url

	require.NoError(t, c.SaveTeam(team))

	got, err := c.LoadTeam("team1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, team.Name, got.Name)
	assert.True(t, got.Tasks[0].Completed)
	require.NotNil(t, got.Tasks[0].Image)
	assert.Equal(t, url, *got.Tasks[0].Image)
}

func TestSnapshotUpsert(t *testing.T) {
	c := newTestCache(t)

	team := &model.Team{ID: "team1", Name: "Before", Tasks: model.Catalog()}
	require.NoError(t, c.SaveTeam(team))

	team.Name = "After"
	require.NoError(t, c.SaveTeam(team))

	got, err := c.LoadTeam("team1")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
}

func TestLoadTeamMissing(t *testing.T) {
	c := newTestCache(t)

	got, err := c.LoadTeam("team1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEnqueueAndUnsyncedOrder(t *testing.T) {
	c := newTestCache(t)

	completed := true
	first := NewTaskOp("team1", "m1", &completed, nil, false)
	second := NewRenameOp("team1", "Dream Team")
	second.CreatedAt = first.CreatedAt.Add(time.Millisecond)

	require.NoError(t, c.Enqueue(first))
	require.NoError(t, c.Enqueue(second))

	ops, err := c.Unsynced()
	require.NoError(t, err)
	require.Len(t, ops, 2)

	assert.Equal(t, first.ID, ops[0].ID)
	assert.Equal(t, OpTask, ops[0].Kind)
	assert.Equal(t, "m1", ops[0].TaskID)
	require.NotNil(t, ops[0].Completed)
	assert.True(t, *ops[0].Completed)
	assert.Nil(t, ops[0].Image)
	assert.False(t, ops[0].ImageSet)

	assert.Equal(t, second.ID, ops[1].ID)
	assert.Equal(t, OpRename, ops[1].Kind)
	assert.Equal(t, "Dream Team", ops[1].Name)
}

func TestOpImageFieldsSurvive(t *testing.T) {
	c := newTestCache(t)

	url := "/uploads/a.jpg"
	attach := NewTaskOp("team1", "p1", nil, &url, true)
	clearOp := NewTaskOp("team1", "p2", nil, nil, true)
	clearOp.CreatedAt = attach.CreatedAt.Add(time.Millisecond)

	require.NoError(t, c.Enqueue(attach))
	require.NoError(t, c.Enqueue(clearOp))

	ops, err := c.Unsynced()
	require.NoError(t, err)
	require.Len(t, ops, 2)

	require.NotNil(t, ops[0].Image)
	assert.Equal(t, url, *ops[0].Image)
	assert.True(t, ops[0].ImageSet)
	assert.Nil(t, ops[0].Completed)

	// Clearing media is image_set with a null value
	assert.Nil(t, ops[1].Image)
	assert.True(t, ops[1].ImageSet)
}

func TestStatusTransitions(t *testing.T) {
	c := newTestCache(t)

	completed := true
	op := NewTaskOp("team1", "m1", &completed, nil, false)
	require.NoError(t, c.Enqueue(op))

	require.NoError(t, c.MarkFailed(op.ID))
	ops, err := c.Unsynced()
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, StatusFailed, ops[0].Status)

	// Failed ops stay in the queue until a flush succeeds
	require.NoError(t, c.MarkSynced(op.ID))
	ops, err = c.Unsynced()
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestPruneSynced(t *testing.T) {
	c := newTestCache(t)

	completed := true
	done := NewTaskOp("team1", "m1", &completed, nil, false)
	waiting := NewRenameOp("team1", "New Name")
	waiting.CreatedAt = done.CreatedAt.Add(time.Millisecond)

	require.NoError(t, c.Enqueue(done))
	require.NoError(t, c.Enqueue(waiting))
	require.NoError(t, c.MarkSynced(done.ID))

	require.NoError(t, c.PruneSynced())

	ops, err := c.Unsynced()
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, waiting.ID, ops[0].ID)
}

func TestClear(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SaveTeam(&model.Team{ID: "team1", Name: "Team 1"}))
	require.NoError(t, c.Enqueue(NewRenameOp("team1", "x")))

	require.NoError(t, c.Clear())

	team, err := c.LoadTeam("team1")
	require.NoError(t, err)
	assert.Nil(t, team)

	ops, err := c.Unsynced()
	require.NoError(t, err)
	assert.Empty(t, ops)
}
