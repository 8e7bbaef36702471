package cmd

import (
	"fmt"

	"github.com/inovacc/diarypush/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the diarypush version",
	Args:  cobra.NoArgs,
	// no configuration needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "diarypush "+version.Get().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
