package cli

import (
	"fmt"

	"github.com/minhokang/busanhunt/internal/cache"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename [new-name]",
	Short: "Rename your team",
	Args:  cobra.ExactArgs(1),
	RunE:  runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	api, store, team, err := loadSession()
	if err != nil {
		return err
	}
	defer store.Close()

	name := args[0]
	if name == "" {
		fmt.Println("Name unchanged.")
		return nil
	}

	team.Name = name
	if err := store.SaveTeam(team); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}
	if err := store.Enqueue(cache.NewRenameOp(team.ID, name)); err != nil {
		return fmt.Errorf("failed to queue change: %w", err)
	}

	fmt.Printf("✓ Team renamed to %q\n", name)
	flushQuietly(api, store)
	return nil
}
