package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	fsloader "github.com/custodia-labs/redline/internal/adapters/driven/loader/fs"
	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/revision"
)

var (
	pageTitle   string
	pageTextID  string
	pageOrder   int
	pageVersion string
	importWatch bool
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage pages",
}

var pageAddCmd = &cobra.Command{
	Use:   "add [content-file]",
	Short: "Add a page from a markup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageAdd,
}

var pageShowCmd = &cobra.Command{
	Use:   "show [page-id]",
	Short: "Print a page's canonical content",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageShow,
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all pages",
	Args:  cobra.NoArgs,
	RunE:  runPageList,
}

var pageImportCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import a directory of markup files as pages",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageImport,
}

func init() {
	pageAddCmd.Flags().StringVar(&pageTitle, "title", "", "page title")
	pageAddCmd.Flags().StringVar(&pageTextID, "text", "", "text the page belongs to")
	pageAddCmd.Flags().IntVar(&pageOrder, "order", 0, "page position within its text")
	pageAddCmd.Flags().StringVar(&pageVersion, "version", "", "historical variant selector")
	pageImportCmd.Flags().BoolVar(&importWatch, "watch", false, "keep watching the directory for changes")

	pageCmd.AddCommand(pageAddCmd, pageShowCmd, pageListCmd, pageImportCmd)
	rootCmd.AddCommand(pageCmd)
}

func runPageAdd(cmd *cobra.Command, args []string) error {
	if deps.Pages == nil {
		return errors.New("page store not configured")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading content file: %w", err)
	}

	now := time.Now()
	page := domain.Page{
		ID:        uuid.New().String(),
		TextID:    pageTextID,
		Order:     pageOrder,
		Version:   pageVersion,
		Title:     pageTitle,
		Content:   string(content),
		Revision:  revision.Of(string(content)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := deps.Pages.Save(context.Background(), &page); err != nil {
		return fmt.Errorf("saving page: %w", err)
	}

	cmd.Println(page.ID)
	return nil
}

func runPageShow(cmd *cobra.Command, args []string) error {
	if deps.Pages == nil {
		return errors.New("page store not configured")
	}

	page, err := deps.Pages.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}
	cmd.Println(page.Content)
	return nil
}

func runPageList(cmd *cobra.Command, _ []string) error {
	if deps.Pages == nil {
		return errors.New("page store not configured")
	}

	pages, err := deps.Pages.ListAll(context.Background())
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}
	if len(pages) == 0 {
		cmd.Println("No pages stored.")
		return nil
	}
	for i := range pages {
		cmd.Printf("%s  %s (text=%s order=%d rev=%.12s)\n",
			pages[i].ID, pages[i].Title, pages[i].TextID, pages[i].Order, pages[i].Revision)
	}
	return nil
}

func runPageImport(cmd *cobra.Command, args []string) error {
	if deps.Pages == nil {
		return errors.New("page store not configured")
	}

	loader := fsloader.NewLoader(deps.Pages)
	count, err := loader.ImportDir(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}
	cmd.Printf("Imported %d pages.\n", count)

	if importWatch {
		return loader.Watch(cmd.Context(), args[0])
	}
	return nil
}
