package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/minhokang/busanhunt/internal/config"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/model"
)

// teamsKey is the single logical key holding the whole team collection
const teamsKey = "teams"

// TeamCount is the number of teams provisioned at first access
const TeamCount = 10

// TeamStore persists the team collection behind a KV backend. The collection
// is small and bounded (ten teams, human-speed writes), so every update is a
// whole-collection read-modify-write; mu serializes those within the process.
// The first-access seed is check-then-write and can race across processes —
// last writer wins, which is acceptable for a single-event deployment.
type TeamStore struct {
	kv KV
	mu sync.Mutex
}

// NewTeamStore creates a team store over the given backend
func NewTeamStore(kv KV) *TeamStore {
	return &TeamStore{kv: kv}
}

// Open resolves the backend from configuration and returns the team store.
// Selection happens once here; there is no runtime fallback between backends.
func Open(cfg *config.Server) (*TeamStore, error) {
	var (
		kv  KV
		err error
	)

	switch {
	case cfg.NATSURL != "":
		logger.Info("Using NATS KV team store", logger.F("url", cfg.NATSURL))
		kv, err = NewNATSKV(cfg.NATSURL, "busanhunt")
	case cfg.PostgresURL != "":
		logger.Info("Using Postgres team store")
		kv, err = NewPostgresKV(cfg.PostgresURL)
	default:
		logger.Info("Using local file team store", logger.F("path", cfg.DataFile))
		kv = NewFileKV(cfg.DataFile)
	}
	if err != nil {
		return nil, err
	}

	return NewTeamStore(kv), nil
}

// Close closes the underlying backend
func (s *TeamStore) Close() error {
	return s.kv.Close()
}

// seedTeams builds the provisioned team set from the task catalog
func seedTeams() []model.Team {
	teams := make([]model.Team, TeamCount)
	for i := range teams {
		teams[i] = model.Team{
			ID:       fmt.Sprintf("team%d", i+1),
			Name:     fmt.Sprintf("Team %d", i+1),
			Password: fmt.Sprintf("busan%d", i+1),
			Tasks:    model.Catalog(),
		}
	}
	return teams
}

// ensureSeeded writes the initial team set if the collection does not exist yet
func (s *TeamStore) ensureSeeded(ctx context.Context) error {
	exists, err := s.kv.Exists(ctx, teamsKey)
	if err != nil {
		return fmt.Errorf("failed to check for existing teams: %w", err)
	}
	if exists {
		return nil
	}

	logger.Info("Seeding team collection", logger.F("teams", TeamCount))

	data, err := json.Marshal(seedTeams())
	if err != nil {
		return fmt.Errorf("failed to marshal seed teams: %w", err)
	}
	if err := s.kv.Set(ctx, teamsKey, data); err != nil {
		return fmt.Errorf("failed to write seed teams: %w", err)
	}
	return nil
}

// list reads the full collection without taking the lock
func (s *TeamStore) list(ctx context.Context) ([]model.Team, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	data, err := s.kv.Get(ctx, teamsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	var teams []model.Team
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("failed to parse teams: %w", err)
	}
	return teams, nil
}

// List returns all teams, seeding the collection on first access. On backend
// failure it logs and returns an empty slice; it never returns a partial list.
func (s *TeamStore) List(ctx context.Context) []model.Team {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams, err := s.list(ctx)
	if err != nil {
		logger.Error("Failed to list teams", logger.F("error", err))
		return []model.Team{}
	}
	return teams
}

// Get returns the team with the given id, or nil if it does not exist
func (s *TeamStore) Get(ctx context.Context, id string) *model.Team {
	teams := s.List(ctx)
	for i := range teams {
		if teams[i].ID == id {
			return &teams[i]
		}
	}
	return nil
}

// Update replaces the matching entry in the collection and writes the whole
// collection back. An id that matches no entry is a silent no-op; callers
// must not rely on Update for existence checks.
func (s *TeamStore) Update(ctx context.Context, team model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams, err := s.list(ctx)
	if err != nil {
		return fmt.Errorf("failed to load teams for update: %w", err)
	}

	found := false
	for i := range teams {
		if teams[i].ID == team.ID {
			teams[i] = team
			found = true
			break
		}
	}
	if !found {
		logger.Warn("Update for unknown team ignored", logger.F("team", team.ID))
		return nil
	}

	data, err := json.Marshal(teams)
	if err != nil {
		return fmt.Errorf("failed to marshal teams: %w", err)
	}
	if err := s.kv.Set(ctx, teamsKey, data); err != nil {
		return fmt.Errorf("failed to write teams: %w", err)
	}

	logger.Debug("Team updated", logger.F("team", team.ID))
	return nil
}
