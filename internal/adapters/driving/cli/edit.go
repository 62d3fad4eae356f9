package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	editBeforeFile string
	editAfterFile  string
	editPatchFile  string
	editEditor     string
)

var editCmd = &cobra.Command{
	Use:   "edit [page-id]",
	Short: "Apply a client edit to a page",
	Long: `Diffs the snapshot the client edited from (--before) against the
snapshot it produced (--after) and applies the patch to the canonical
content. With --patch, applies an already-serialized wire patch
instead. Hunks that no longer anchor are dropped individually; the
rest of the edit is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editBeforeFile, "before", "", "file holding the snapshot the client edited from")
	editCmd.Flags().StringVar(&editAfterFile, "after", "", "file holding the client's edited snapshot")
	editCmd.Flags().StringVar(&editPatchFile, "patch", "", "file holding a serialized wire patch")
	editCmd.Flags().StringVar(&editEditor, "editor", "", "identity announced to subscribers")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if deps.Sync == nil {
		return errors.New("sync service not configured")
	}
	pageID := args[0]
	ctx := context.Background()

	if editPatchFile != "" {
		patch, err := os.ReadFile(editPatchFile)
		if err != nil {
			return fmt.Errorf("reading patch file: %w", err)
		}
		result, err := deps.Sync.ApplyPatch(ctx, pageID, string(patch), editEditor)
		if err != nil {
			return fmt.Errorf("applying patch: %w", err)
		}
		return printEditResult(cmd, result.Saved, len(result.Applied), result.Rejected(), result.Revision)
	}

	if editBeforeFile == "" || editAfterFile == "" {
		return errors.New("either --patch or both --before and --after are required")
	}

	before, err := os.ReadFile(editBeforeFile)
	if err != nil {
		return fmt.Errorf("reading before file: %w", err)
	}
	after, err := os.ReadFile(editAfterFile)
	if err != nil {
		return fmt.Errorf("reading after file: %w", err)
	}

	result, err := deps.Sync.ApplyEdit(ctx, pageID, string(before), string(after), editEditor)
	if err != nil {
		return fmt.Errorf("applying edit: %w", err)
	}
	return printEditResult(cmd, result.Saved, len(result.Applied), result.Rejected(), result.Revision)
}

func printEditResult(cmd *cobra.Command, saved bool, hunks, rejected int, rev string) error {
	if !saved {
		cmd.Println("No visible change; nothing saved.")
		return nil
	}
	cmd.Printf("Applied %d of %d hunks, revision %.12s\n", hunks-rejected, hunks, rev)
	return nil
}
