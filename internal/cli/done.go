package cli

import (
	"fmt"

	"github.com/minhokang/busanhunt/internal/cache"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as done",
	Long: `Mark a hunt task as completed.

Examples:
  busanhunt done m1
  busanhunt done m1 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark task as not done")
}

func runDone(cmd *cobra.Command, args []string) error {
	api, store, team, err := loadSession()
	if err != nil {
		return err
	}
	defer store.Close()

	task := team.Task(args[0])
	if task == nil {
		return fmt.Errorf("task not found: %s", args[0])
	}

	// Apply locally first, then push
	completed := !doneUndo
	task.Completed = completed
	if err := store.SaveTeam(team); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}
	if err := store.Enqueue(cache.NewTaskOp(team.ID, task.ID, &completed, nil, false)); err != nil {
		return fmt.Errorf("failed to queue change: %w", err)
	}

	if completed {
		fmt.Printf("✓ Completed: %s\n", task.Title)
	} else {
		fmt.Printf("○ Reopened: %s\n", task.Title)
	}

	flushQuietly(api, store)
	return nil
}
