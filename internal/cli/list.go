package cli

import (
	"fmt"
	"strings"

	"github.com/minhokang/busanhunt/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your team's tasks",
	Long: `List the team's checklist grouped by category.

Examples:
  busanhunt list
  busanhunt list --refresh`,
	RunE: runList,
}

var listRefresh bool

func init() {
	listCmd.Flags().BoolVarP(&listRefresh, "refresh", "r", false, "Fetch the latest record from the server first")
}

func runList(cmd *cobra.Command, args []string) error {
	api, store, team, err := loadSession()
	if err != nil {
		return err
	}
	defer store.Close()

	if listRefresh {
		flushQuietly(api, store)
		if fresh, err := api.Refresh(); err == nil {
			team = fresh
			_ = store.SaveTeam(team)
		} else {
			fmt.Printf("⚠️  Refresh failed, showing cached data: %v\n", err)
		}
	}

	printChecklist(team)
	return nil
}

// printChecklist renders the checklist grouped by category, keeping the
// catalog order within each group
func printChecklist(team *model.Team) {
	fmt.Printf("\n🏖  %s (%s) — %d/%d done\n", team.Name, team.ID,
		len(team.Tasks)-team.Pending(), len(team.Tasks))

	var category string
	for _, t := range team.Tasks {
		if t.Category != category {
			category = t.Category
			fmt.Printf("\n%s\n%s\n", category, strings.Repeat("─", 40))
		}

		icon := "[ ]"
		if t.Completed {
			icon = "[x]"
		}

		proof := ""
		if t.HasImage() {
			proof = "  📎"
		}

		fmt.Printf("  %s  %-4s %s%s\n", icon, t.ID, t.Title, proof)
	}
	fmt.Println()
}
