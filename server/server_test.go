package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhokang/busanhunt/internal/config"
	"github.com/minhokang/busanhunt/internal/model"
	"github.com/minhokang/busanhunt/internal/store"
)

// memMedia is an in-memory media store recording every save and delete
type memMedia struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	deleted  []string
	failSave bool
}

func newMemMedia() *memMedia {
	return &memMedia{blobs: make(map[string][]byte)}
}

func (m *memMedia) Save(ctx context.Context, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return "", errors.New("media backend unavailable")
	}
	m.blobs[name] = data
	return "/uploads/" + name, nil
}

func (m *memMedia) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, url)
	return nil
}

func (m *memMedia) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[name]
	if !ok {
		return nil, errors.New("no such blob")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memMedia) deletedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

func newTestServer(t *testing.T) (*Server, *memMedia) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Server{
		DataFile:  filepath.Join(dir, "db.json"),
		UploadDir: filepath.Join(dir, "uploads"),
	}
	st := store.NewTeamStore(store.NewFileKV(cfg.DataFile))
	ms := newMemMedia()
	return New(cfg, st, ms), ms
}

// doJSON posts a JSON body and decodes nothing; callers decode rec.Body
func doJSON(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeTeam(t *testing.T, rec *httptest.ResponseRecorder) *model.Team {
	t.Helper()
	var resp struct {
		Success bool        `json:"success"`
		Team    *model.Team `json:"team"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.Team)
	return resp.Team
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLoginSuccess(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/login", map[string]string{
		"teamId":   "team3",
		"password": "busan3",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	team := decodeTeam(t, rec)
	assert.Equal(t, "team3", team.ID)
	assert.Equal(t, "Team 3", team.Name)
	assert.Equal(t, "busan3", team.Password)
	assert.Len(t, team.Tasks, model.CatalogSize())
}

func TestLoginWrongPassword(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/login", map[string]string{
		"teamId":   "team3",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid credentials", resp.Message)
	assert.NotContains(t, rec.Body.String(), "busan3")
}

func TestLoginUnknownTeam(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/login", map[string]string{
		"teamId":   "team99",
		"password": "busan1",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
