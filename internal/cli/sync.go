package cli

import (
	"fmt"
	"time"

	"github.com/minhokang/busanhunt/internal/client"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local changes and pull the latest team record",
	RunE:  runSync,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection and sync status",
	RunE:  runStatus,
}

func runSync(cmd *cobra.Command, args []string) error {
	api, store, _, err := loadSession()
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Println("🔄 Synchronizing...")

	result, err := api.Flush(store)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	// Pull the authoritative record even when nothing was pushed
	team, err := api.Refresh()
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}
	if err := store.SaveTeam(team); err != nil {
		return fmt.Errorf("failed to cache team: %w", err)
	}

	fmt.Printf("✓ Sync complete! Pushed: %d, team %q at %d/%d done\n",
		result.Applied, team.Name, len(team.Tasks)-team.Pending(), len(team.Tasks))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	api, err := client.New()
	if err != nil {
		return err
	}

	serverURL, teamID, lastSync := api.Status()

	fmt.Printf("Server:    %s\n", serverURL)
	if api.IsLoggedIn() {
		fmt.Printf("Team:      %s\n", teamID)
		if lastSync > 0 {
			fmt.Printf("Last Sync: %s\n", time.Unix(lastSync, 0).Format(time.RFC1123))
		} else {
			fmt.Println("Last Sync: never")
		}
		fmt.Println("Status:    ✓ Logged in")
	} else {
		fmt.Println("Status:    Not logged in")
	}

	return nil
}
