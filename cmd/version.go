package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gbp-dev/gbp/gbp"
)

func gbpVersion(cmd *commander.Command, args []string) error {
	fmt.Printf("gbp version: %s\n", gbp.Version)
	return nil
}

func makeCmdVersion() *commander.Command {
	return &commander.Command{
		Run:       gbpVersion,
		UsageLine: "version",
		Short:     "display version",
		Long: `
Shows gbp version.

ex:
  $ gbp version
`,
		Flag: *flag.NewFlagSet("gbp-version", flag.ExitOnError),
	}
}
