package commands

import "github.com/spf13/cobra"

// NewRootCmd builds the mpdump root command, the same flat
// root-plus-subcommands layout cmd/cli/commands.NewRootCmd uses.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mpdump",
		Short: "Inspect multipart/form-data bodies",
	}
	rootCmd.AddCommand(
		newDumpCmd(),
		newExtractCmd(),
	)
	return rootCmd
}
