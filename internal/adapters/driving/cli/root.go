// Package cli implements the cobra command surface for Redline.
//
// Commands only talk to the driving ports; wiring of concrete stores
// and services happens in cmd/redline.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/redline/internal/adapters/driven/notify/ws"
	"github.com/custodia-labs/redline/internal/core/ports/driven"
	"github.com/custodia-labs/redline/internal/core/ports/driving"
	"github.com/custodia-labs/redline/internal/logger"
)

// Deps carries everything the commands need. Fields left nil disable
// the commands that require them.
type Deps struct {
	Sync        driving.SyncService
	Annotations driving.AnnotationService
	Search      driving.SearchService
	Pages       driven.PageStore
	Config      driven.ConfigStore

	// Hub is the websocket notification hub mounted at /ws by serve.
	Hub *ws.Hub
}

var (
	deps        Deps
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "Collaborative page synchronization and annotation engine",
	Long: `Redline keeps a canonical copy of long structured texts, applies
client edits as context-anchored patches, anchors suggestion and post
threads to exact text ranges, and searches across all pages.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		verbose := verboseFlag
		if !verbose && deps.Config != nil {
			verbose = deps.Config.GetBool("logging.verbose")
		}
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the CLI with the given dependencies.
func Execute(d Deps) error {
	deps = d
	return rootCmd.Execute()
}
