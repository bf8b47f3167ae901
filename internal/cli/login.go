package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/minhokang/busanhunt/internal/cache"
	"github.com/minhokang/busanhunt/internal/client"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with your team id and password",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local cache",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().String("server", "", "Set the hunt server URL before logging in")
}

func runLogin(cmd *cobra.Command, args []string) error {
	api, err := client.New()
	if err != nil {
		return err
	}

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		if err := api.SetServer(server); err != nil {
			return err
		}
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Team ID: ")
	teamID, _ := reader.ReadString('\n')
	teamID = strings.TrimSpace(teamID)

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	password := string(passwordBytes)
	fmt.Println()

	fmt.Println("🔄 Logging in...")
	team, err := api.Login(teamID, password)
	if err != nil {
		return err
	}

	store, err := cache.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer store.Close()

	if err := store.SaveTeam(team); err != nil {
		return fmt.Errorf("failed to cache team: %w", err)
	}

	fmt.Printf("✅ Logged in as %s (%s), %d/%d tasks done\n",
		team.Name, team.ID, len(team.Tasks)-team.Pending(), len(team.Tasks))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	api, err := client.New()
	if err != nil {
		return err
	}

	if !api.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	store, err := cache.OpenDefault()
	if err == nil {
		_ = store.Clear()
		store.Close()
	}

	if err := api.Logout(); err != nil {
		return err
	}

	fmt.Println("✅ Logged out.")
	return nil
}
