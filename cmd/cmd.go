// Package cmd implements console commands
package cmd

import (
	"os"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

// RootCommand creates root command in command tree
func RootCommand() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0],
		Short:     "RPM packaging helper",
		Long: `
gbp manages RPM packaging metadata: it reads spec files preserving
their exact formatting, queries and edits header tags and patches,
and resolves build conditionals, writing back only the lines that
actually changed.

All commands locate the spec file automatically inside the packaging
directory unless one is given explicitly.`,
		Flag: *flag.NewFlagSet("gbp", flag.ExitOnError),
		Subcommands: []*commander.Command{
			makeCmdSpec(),
			makeCmdTag(),
			makeCmdPatch(),
			makeCmdConfig(),
			makeCmdVersion(),
		},
	}

	cmd.Flag.String("config", "", "location of configuration file (default locations are /etc/gbp/gbp.conf, ~/.gbp.conf, <packaging-dir>/.gbp.conf)")
	cmd.Flag.String("packaging-dir", "", "directory containing the packaging files")
	cmd.Flag.String("spec-file", "", "spec file to operate on, overrides auto-discovery")
	cmd.Flag.String("log-level", "", "log level (debug, info, warning, error)")
	cmd.Flag.String("log-format", "", "log format (default, json)")

	return cmd
}
