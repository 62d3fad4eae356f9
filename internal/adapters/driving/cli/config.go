package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
	Long: `Reads and writes the redline config file. Keys use dot notation,
e.g. "server.addr", "search.max_per_page", "logging.verbose".`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if deps.Config == nil {
		return errors.New("config store not configured")
	}

	value, ok := deps.Config.Get(args[0])
	if !ok {
		cmd.Println("(not set)")
		return nil
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if deps.Config == nil {
		return errors.New("config store not configured")
	}

	if err := deps.Config.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if deps.Config == nil {
		return errors.New("config store not configured")
	}

	cmd.Println(deps.Config.Path())
	return nil
}
