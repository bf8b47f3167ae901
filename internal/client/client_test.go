package client

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhokang/busanhunt/internal/config"
	"github.com/minhokang/busanhunt/internal/media"
	"github.com/minhokang/busanhunt/internal/store"
	"github.com/minhokang/busanhunt/server"
)

// startHuntServer runs a real server over temp backends
func startHuntServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Server{
		DataFile:  filepath.Join(dir, "db.json"),
		UploadDir: filepath.Join(dir, "uploads"),
	}
	st := store.NewTeamStore(store.NewFileKV(cfg.DataFile))
	srv := server.New(cfg, st, media.NewLocalStore(cfg.UploadDir))

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// newTestClient isolates the client config under a temp home
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.SetServer(serverURL))
	return c
}

func TestLoginStoresCredentials(t *testing.T) {
	ts := startHuntServer(t)
	c := newTestClient(t, ts.URL)

	assert.False(t, c.IsLoggedIn())

	team, err := c.Login("team1", "busan1")
	require.NoError(t, err)
	assert.Equal(t, "team1", team.ID)
	assert.True(t, c.IsLoggedIn())
	assert.Equal(t, "team1", c.TeamID())

	// Refresh re-logs in with the stored credentials
	again, err := c.Refresh()
	require.NoError(t, err)
	assert.Equal(t, "team1", again.ID)
}

func TestLoginRejected(t *testing.T) {
	ts := startHuntServer(t)
	c := newTestClient(t, ts.URL)

	_, err := c.Login("team1", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.False(t, c.IsLoggedIn())
}

func TestLogoutClearsCredentials(t *testing.T) {
	ts := startHuntServer(t)
	c := newTestClient(t, ts.URL)

	_, err := c.Login("team1", "busan1")
	require.NoError(t, err)

	require.NoError(t, c.Logout())
	assert.False(t, c.IsLoggedIn())

	_, err = c.Refresh()
	assert.Error(t, err)
}

func TestUpdateTask(t *testing.T) {
	ts := startHuntServer(t)
	c := newTestClient(t, ts.URL)

	_, err := c.Login("team2", "busan2")
	require.NoError(t, err)

	completed := true
	team, err := c.UpdateTask("c1", &completed, nil, false)
	require.NoError(t, err)
	require.NotNil(t, team.Task("c1"))
	assert.True(t, team.Task("c1").Completed)
}

func TestRenameTeam(t *testing.T) {
	ts := startHuntServer(t)
	c := newTestClient(t, ts.URL)

	_, err := c.Login("team1", "busan1")
	require.NoError(t, err)

	team, err := c.RenameTeam("Dream Team")
	require.NoError(t, err)
	assert.Equal(t, "Dream Team", team.Name)
}

func TestUploadFile(t *testing.T) {
	ts := startHuntServer(t)
	c := newTestClient(t, ts.URL)

	path := filepath.Join(t.TempDir(), "proof photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0644))

	url, err := c.UploadFile(path)
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/")
	assert.Contains(t, url, "proof_photo.jpg")
}
