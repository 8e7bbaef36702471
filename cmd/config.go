package cmd

import (
	"fmt"

	"github.com/inovacc/diarypush/internal/application"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the configuration the next run will use, after layering the built-in
defaults, the config file and command-line flags.

The config file is optional. See --path for its default location.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showPath, _ := cmd.Flags().GetBool("path")
		w := cmd.OutOrStdout()

		if showPath {
			path := flags.ConfigPath
			if path == "" {
				var err error

				path, err = application.ConfigFilePath()
				if err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintln(w, path)

			return nil
		}

		_, _ = fmt.Fprintln(w, titleStyle.Render("Configuration"))

		for _, f := range cfg.Fields() {
			_, _ = fmt.Fprintf(w, "  %-14s %s\n", boldStyle.Render(f[0]), f[1])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("path", false, "Print the config file path and exit")
}
