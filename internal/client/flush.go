package client

import (
	"fmt"

	"github.com/minhokang/busanhunt/internal/cache"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/model"
)

// FlushResult reports what a flush achieved
type FlushResult struct {
	Applied int
	Team    *model.Team // last record the server returned, nil if nothing applied
}

// Flush replays unsynced operations against the server in submission order.
// The first failure marks its op failed and stops the replay so later ops
// cannot land out of order; everything already confirmed stays synced. The
// local snapshot is only advanced to the server's view on success — on
// failure the optimistic local state stands until the next flush.
func (c *Client) Flush(store *cache.Cache) (*FlushResult, error) {
	if !c.IsLoggedIn() {
		return nil, fmt.Errorf("not logged in")
	}

	ops, err := store.Unsynced()
	if err != nil {
		return nil, err
	}

	result := &FlushResult{}

	for _, op := range ops {
		var (
			team    *model.Team
			callErr error
		)

		switch op.Kind {
		case cache.OpTask:
			team, callErr = c.UpdateTask(op.TaskID, op.Completed, op.Image, op.ImageSet)
		case cache.OpRename:
			team, callErr = c.RenameTeam(op.Name)
		default:
			logger.Warn("Skipping op of unknown kind", logger.F("kind", op.Kind))
			continue
		}

		if callErr != nil {
			logger.Warn("Flush stopped on failed op",
				logger.F("op", op.ID), logger.F("error", callErr))
			if err := store.MarkFailed(op.ID); err != nil {
				logger.Error("Failed to mark op failed", logger.F("op", op.ID), logger.F("error", err))
			}
			return result, fmt.Errorf("sync failed: %w", callErr)
		}

		if err := store.MarkSynced(op.ID); err != nil {
			logger.Error("Failed to mark op synced", logger.F("op", op.ID), logger.F("error", err))
		}
		result.Applied++
		result.Team = team
	}

	if result.Team != nil {
		if err := store.SaveTeam(result.Team); err != nil {
			logger.Error("Failed to save team snapshot", logger.F("error", err))
		}
		if err := store.PruneSynced(); err != nil {
			logger.Error("Failed to prune synced ops", logger.F("error", err))
		}
		_ = c.UpdateSyncTime()
	}

	return result, nil
}
