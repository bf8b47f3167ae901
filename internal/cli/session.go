package cli

import (
	"fmt"

	"github.com/minhokang/busanhunt/internal/cache"
	"github.com/minhokang/busanhunt/internal/client"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/model"
)

// loadSession opens the API client and local cache and resolves the team
// record, preferring the cached copy and falling back to the server. The
// cache wins even when stale so the checklist works offline.
func loadSession() (*client.Client, *cache.Cache, *model.Team, error) {
	api, err := client.New()
	if err != nil {
		return nil, nil, nil, err
	}
	if !api.IsLoggedIn() {
		return nil, nil, nil, fmt.Errorf("not logged in, run 'busanhunt login' first")
	}

	store, err := cache.OpenDefault()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}

	team, err := store.LoadTeam(api.TeamID())
	if err != nil {
		logger.Warn("Failed to load cached team", logger.F("error", err))
	}

	if team == nil {
		team, err = api.Refresh()
		if err != nil {
			store.Close()
			return nil, nil, nil, fmt.Errorf("no cached data and server unreachable: %w", err)
		}
		if err := store.SaveTeam(team); err != nil {
			logger.Warn("Failed to cache team", logger.F("error", err))
		}
	}

	return api, store, team, nil
}

// flushQuietly pushes unsynced ops, reporting the outcome on one line
func flushQuietly(api *client.Client, store *cache.Cache) {
	result, err := api.Flush(store)
	if err != nil {
		fmt.Printf("⚠️  Sync failed (changes kept locally): %v\n", err)
		return
	}
	if result.Applied > 0 {
		fmt.Printf("✓ Synced (%d changes)\n", result.Applied)
	}
}
