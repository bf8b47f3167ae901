package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhokang/busanhunt/internal/model"
)

// failingKV simulates an unreachable backend
type failingKV struct{}

func (f *failingKV) Exists(ctx context.Context, key string) (bool, error) {
	return false, errors.New("backend unreachable")
}

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("backend unreachable")
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("backend unreachable")
}

func (f *failingKV) Close() error { return nil }

func newTestStore(t *testing.T) *TeamStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return NewTeamStore(NewFileKV(path))
}

func TestListSeedsOnFirstAccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	teams := s.List(ctx)
	require.Len(t, teams, TeamCount)

	for i, team := range teams {
		assert.Equal(t, fmt.Sprintf("team%d", i+1), team.ID)
		assert.Equal(t, fmt.Sprintf("Team %d", i+1), team.Name)
		assert.Equal(t, fmt.Sprintf("busan%d", i+1), team.Password)
		require.Len(t, team.Tasks, model.CatalogSize())
	}

	// Every team starts with the same catalog, in catalog order
	catalog := model.Catalog()
	for i, task := range teams[0].Tasks {
		assert.Equal(t, catalog[i].ID, task.ID)
		assert.False(t, task.Completed)
		assert.Nil(t, task.Image)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	team := s.Get(ctx, "team1")
	require.NotNil(t, team)
	team.Name = "Renamed"
	require.NoError(t, s.Update(ctx, *team))

	// Listing again must not re-seed over the edit
	teams := s.List(ctx)
	require.Len(t, teams, TeamCount)
	assert.Equal(t, "Renamed", teams[0].Name)
}

func TestUpdateRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	team := s.Get(ctx, "team1")
	require.NotNil(t, team)

	task := team.Task("m1")
	require.NotNil(t, task)
	task.Completed = true
	url := "/uploads/team1-m1-123.jpg"
	task.Image = &url

	require.NoError(t, s.Update(ctx, *team))

	got := s.Get(ctx, "team1")
	require.NotNil(t, got)
	gotTask := got.Task("m1")
	require.NotNil(t, gotTask)
	assert.True(t, gotTask.Completed)
	require.NotNil(t, gotTask.Image)
	assert.Equal(t, url, *gotTask.Image)
}

func TestUpdateDoesNotLeakIntoOtherTeams(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	team := s.Get(ctx, "team1")
	require.NotNil(t, team)
	team.Task("m1").Completed = true
	require.NoError(t, s.Update(ctx, *team))

	other := s.Get(ctx, "team2")
	require.NotNil(t, other)
	assert.False(t, other.Task("m1").Completed)
	assert.Equal(t, "Team 2", other.Name)
}

func TestUpdateUnknownTeamIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := s.List(ctx)

	ghost := model.Team{ID: "team99", Name: "Ghost", Tasks: model.Catalog()}
	require.NoError(t, s.Update(ctx, ghost))

	after := s.List(ctx)
	assert.Equal(t, before, after)
	assert.Nil(t, s.Get(ctx, "team99"))
}

func TestConcurrentUpdatesKeepCollectionIntact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.List(ctx)

	var wg sync.WaitGroup
	for _, id := range []string{"team1", "team2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				team := s.Get(ctx, id)
				if !assert.NotNil(t, team) {
					return
				}
				team.Task("m1").Completed = i%2 == 0
				assert.NoError(t, s.Update(ctx, *team))
			}
		}(id)
	}
	wg.Wait()

	teams := s.List(ctx)
	require.Len(t, teams, TeamCount)
	for _, team := range teams {
		assert.Len(t, team.Tasks, model.CatalogSize())
	}
}

func TestListReturnsEmptyOnBackendFailure(t *testing.T) {
	s := NewTeamStore(&failingKV{})
	ctx := context.Background()

	teams := s.List(ctx)
	assert.NotNil(t, teams)
	assert.Empty(t, teams)

	assert.Nil(t, s.Get(ctx, "team1"))
}

func TestUpdateReturnsBackendFailure(t *testing.T) {
	s := NewTeamStore(&failingKV{})
	ctx := context.Background()

	err := s.Update(ctx, model.Team{ID: "team1"})
	assert.Error(t, err)
}
