package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long: `Print the settings grlm would run with, after merging flags, GRLM_*
environment variables and the config file. Passwords and tokens are masked.

The output is valid config file YAML:
  grlm config > ~/.config/grlm/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.YAML()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.cfg.Path != "" {
				fmt.Fprintf(out, "# source: %s\n", a.cfg.Path)
			} else {
				fmt.Fprintln(out, "# source: defaults, flags and environment")
			}
			_, err = out.Write(data)
			return err
		},
	}
}
