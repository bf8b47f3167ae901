package cli

import (
	"fmt"

	"github.com/minhokang/busanhunt/internal/cache"
	"github.com/spf13/cobra"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Attach or clear task proof media",
}

var mediaAttachCmd = &cobra.Command{
	Use:   "attach [task-id] [file]",
	Short: "Upload a photo or video and attach it to a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runMediaAttach,
}

var mediaClearCmd = &cobra.Command{
	Use:   "clear [task-id]",
	Short: "Remove the proof attached to a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaClear,
}

func init() {
	mediaCmd.AddCommand(mediaAttachCmd)
	mediaCmd.AddCommand(mediaClearCmd)
}

func runMediaAttach(cmd *cobra.Command, args []string) error {
	api, store, team, err := loadSession()
	if err != nil {
		return err
	}
	defer store.Close()

	task := team.Task(args[0])
	if task == nil {
		return fmt.Errorf("task not found: %s", args[0])
	}

	// The upload itself cannot be queued offline; bytes go up first, the
	// attachment rides the op queue like any other change.
	fmt.Println("🔄 Uploading...")
	url, err := api.UploadFile(args[1])
	if err != nil {
		return err
	}

	task.Image = &url
	if err := store.SaveTeam(team); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}
	if err := store.Enqueue(cache.NewTaskOp(team.ID, task.ID, nil, &url, true)); err != nil {
		return fmt.Errorf("failed to queue change: %w", err)
	}

	fmt.Printf("📎 Attached to %s: %s\n", task.ID, url)
	flushQuietly(api, store)
	return nil
}

func runMediaClear(cmd *cobra.Command, args []string) error {
	api, store, team, err := loadSession()
	if err != nil {
		return err
	}
	defer store.Close()

	task := team.Task(args[0])
	if task == nil {
		return fmt.Errorf("task not found: %s", args[0])
	}
	if !task.HasImage() {
		fmt.Println("No media attached.")
		return nil
	}

	task.Image = nil
	if err := store.SaveTeam(team); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}
	if err := store.Enqueue(cache.NewTaskOp(team.ID, task.ID, nil, nil, true)); err != nil {
		return fmt.Errorf("failed to queue change: %w", err)
	}

	fmt.Printf("🗑  Cleared media on %s\n", task.ID)
	flushQuietly(api, store)
	return nil
}
