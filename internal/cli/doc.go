// Package cli implements the grlm command-line interface.
//
// The root command runs the live monitor. Subcommands cover the one-shot
// cases:
//
//	grlm                 - live gauge for one quota bucket
//	grlm status          - table of every bucket, then exit
//	grlm config          - print the effective settings (secrets redacted)
//	grlm doctor          - diagnose config, credentials and API access
//	grlm version         - build information
//	grlm completion      - shell completion scripts
//
// # Settings
//
// Every setting can come from a flag, a GRLM_* environment variable or the
// YAML config file (~/.config/grlm/config.yaml, or --config). Flags win over
// the environment, which wins over the file. Commands read the merged
// result from config.Load in PersistentPreRunE.
//
// # Displays
//
// On a terminal the monitor runs a Bubble Tea program in the alternate
// screen. With --plain, or when stdout is not a terminal, it writes a
// single status line instead.
package cli
