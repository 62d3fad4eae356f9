package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/redline/internal/core/domain"
)

var (
	markKind   string
	markID     string
	markText   string
	markStart  int
	markEnd    int
	markColor  string
	markEditor string
)

var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Manage thread anchors embedded in page markup",
}

var markListCmd = &cobra.Command{
	Use:   "list [page-id]",
	Short: "List every mark on a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkList,
}

var markLocateCmd = &cobra.Command{
	Use:   "locate [page-id]",
	Short: "Locate a mark by kind and id",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkLocate,
}

var markAddCmd = &cobra.Command{
	Use:   "add [page-id]",
	Short: "Wrap a text range with a new mark",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkAdd,
}

var markReplaceCmd = &cobra.Command{
	Use:   "replace [page-id]",
	Short: "Replace the text wrapped by a mark, preserving its id",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkReplace,
}

var markRemoveCmd = &cobra.Command{
	Use:   "remove [page-id]",
	Short: "Unwrap a mark, keeping its text as plain prose",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkRemove,
}

func init() {
	for _, cmd := range []*cobra.Command{markLocateCmd, markAddCmd, markReplaceCmd, markRemoveCmd} {
		cmd.Flags().StringVar(&markKind, "kind", "suggestion", "mark kind (suggestion or post)")
		cmd.Flags().StringVar(&markID, "id", "", "mark identifier")
		cmd.Flags().StringVar(&markEditor, "editor", "", "identity announced to subscribers")
	}
	markAddCmd.Flags().IntVar(&markStart, "start", 0, "range start byte offset")
	markAddCmd.Flags().IntVar(&markEnd, "end", 0, "range end byte offset")
	markAddCmd.Flags().StringVar(&markColor, "color", "", "mark color attribute")
	markReplaceCmd.Flags().StringVar(&markText, "text", "", "replacement text")

	markCmd.AddCommand(markListCmd, markLocateCmd, markAddCmd, markReplaceCmd, markRemoveCmd)
	rootCmd.AddCommand(markCmd)
}

func markServiceKind() (domain.MarkKind, error) {
	kind := domain.MarkKind(markKind)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown mark kind %q", domain.ErrInvalidInput, markKind)
	}
	return kind, nil
}

func runMarkList(cmd *cobra.Command, args []string) error {
	if deps.Annotations == nil {
		return errors.New("annotation service not configured")
	}

	marks, err := deps.Annotations.List(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("listing marks: %w", err)
	}
	if len(marks) == 0 {
		cmd.Println("No marks on this page.")
		return nil
	}
	for _, m := range marks {
		cmd.Printf("%s/%s [%d:%d] %q\n", m.Kind, m.ID, m.Inner.Start, m.Inner.End, m.Text)
	}
	return nil
}

func runMarkLocate(cmd *cobra.Command, args []string) error {
	if deps.Annotations == nil {
		return errors.New("annotation service not configured")
	}
	kind, err := markServiceKind()
	if err != nil {
		return err
	}

	mark, found, err := deps.Annotations.Locate(context.Background(), args[0], kind, markID)
	if err != nil {
		return fmt.Errorf("locating mark: %w", err)
	}
	if !found {
		cmd.Println("Mark not found; its anchor may have been edited away.")
		return nil
	}
	cmd.Printf("[%d:%d] %q\n", mark.Inner.Start, mark.Inner.End, mark.Text)
	return nil
}

func runMarkAdd(cmd *cobra.Command, args []string) error {
	if deps.Annotations == nil {
		return errors.New("annotation service not configured")
	}
	kind, err := markServiceKind()
	if err != nil {
		return err
	}

	id := markID
	if id == "" {
		id = uuid.New().String()
	}
	attrs := map[string]string{}
	if markColor != "" {
		attrs["color"] = markColor
	}

	rng := domain.Range{Start: markStart, End: markEnd}
	if err := deps.Annotations.Add(context.Background(), args[0], kind, id, rng, attrs, markEditor); err != nil {
		return fmt.Errorf("adding mark: %w", err)
	}
	cmd.Println(id)
	return nil
}

func runMarkReplace(cmd *cobra.Command, args []string) error {
	if deps.Annotations == nil {
		return errors.New("annotation service not configured")
	}
	kind, err := markServiceKind()
	if err != nil {
		return err
	}

	changed, err := deps.Annotations.Replace(context.Background(), args[0], kind, markID, markText, markEditor)
	if err != nil {
		return fmt.Errorf("replacing mark text: %w", err)
	}
	if !changed {
		cmd.Println("Nothing changed.")
		return nil
	}
	cmd.Println("Replaced.")
	return nil
}

func runMarkRemove(cmd *cobra.Command, args []string) error {
	if deps.Annotations == nil {
		return errors.New("annotation service not configured")
	}
	kind, err := markServiceKind()
	if err != nil {
		return err
	}

	changed, err := deps.Annotations.Remove(context.Background(), args[0], kind, markID, markEditor)
	if err != nil {
		return fmt.Errorf("removing mark: %w", err)
	}
	if !changed {
		cmd.Println("Nothing changed.")
		return nil
	}
	cmd.Println("Removed.")
	return nil
}
