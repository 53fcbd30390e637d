package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rileyhilliard/grlm/internal/config"
	"github.com/rileyhilliard/grlm/internal/ui"
)

// app carries state shared by the commands of one invocation.
type app struct {
	v   *viper.Viper
	cfg *config.Config

	configPath string
	noColor    bool
	plain      bool
}

// flagKeys binds flag names to config keys.
var flagKeys = map[string]string{
	"login":        "login",
	"password":     "password",
	"access-token": "access_token",
	"frequency":    "frequency",
	"resource":     "resource",
	"api-url":      "api_url",
	"metrics-addr": "metrics_addr",
	"log-file":     "log_file",
	"verbose":      "debug",
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "grlm",
		Short: "Watch your GitHub API rate limit",
		Long: `grlm polls GitHub's /rate_limit endpoint and draws the remaining quota
as a live gauge. The gauge turns amber at half the quota and red at 8%;
the reset countdown is highlighted in the last two minutes of a window.

Requests to /rate_limit do not count against the quota.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  ?           Show help

Examples:
  grlm
  grlm --access-token $GITHUB_TOKEN --frequency 5
  grlm --login octocat
  grlm --resource search --plain
  grlm --metrics-addr 127.0.0.1:9464`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMonitor(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.config/grlm/config.yaml)")
	pf.StringP("login", "l", "", "GitHub login for basic auth")
	pf.StringP("password", "p", "", "password for basic auth (prompted when omitted)")
	pf.StringP("access-token", "t", "", "personal access token (takes precedence over login)")
	pf.IntP("frequency", "f", config.DefaultFrequency, "poll interval in seconds")
	pf.StringP("resource", "r", "core", "quota bucket to watch: core, search or graphql")
	pf.String("api-url", config.DefaultConfig().APIURL, "API root, for GitHub Enterprise")
	pf.String("log-file", "", "write logs to this file")
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	cmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&a.plain, "plain", false, "print a status line instead of the full-screen gauge")

	cmd.AddCommand(
		newStatusCmd(a),
		newConfigCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
		newCompletionCmd(),
	)

	return cmd
}

// load binds the flags of the running command and reads the merged config.
func (a *app) load(cmd *cobra.Command) error {
	if a.noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}

	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := a.v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
