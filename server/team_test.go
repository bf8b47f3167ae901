package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRename(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/team", map[string]string{
		"teamId": "team1",
		"name":   "Dream Team",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dream Team", decodeTeam(t, rec).Name)

	// The new name survives a round trip through the store
	again := decodeTeam(t, doJSON(s, http.MethodPost, "/login", map[string]string{
		"teamId": "team1", "password": "busan1",
	}))
	assert.Equal(t, "Dream Team", again.Name)
}

func TestTeamRenameEmptyNameIsNoOp(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/team", map[string]string{
		"teamId": "team1",
		"name":   "",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Team 1", decodeTeam(t, rec).Name)
}

func TestTeamRenameUnknownTeam(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/team", map[string]string{
		"teamId": "team99",
		"name":   "Ghost",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Team not found")
}

func TestTeamRenameDoesNotTouchTasks(t *testing.T) {
	s, _ := newTestServer(t)

	doJSON(s, http.MethodPost, "/tasks", map[string]any{
		"teamId": "team1", "taskId": "m1", "completed": true,
	})

	rec := doJSON(s, http.MethodPost, "/team", map[string]string{
		"teamId": "team1", "name": "Renamed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	team := decodeTeam(t, rec)
	assert.Equal(t, "Renamed", team.Name)
	assert.True(t, team.Task("m1").Completed)
}
