package cli

import "github.com/spf13/cobra"

// Version is the Redline CLI version.
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the Redline version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("redline %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
