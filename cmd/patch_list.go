package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

func gbpPatchList(cmd *commander.Command, args []string) error {
	if len(args) > 1 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	spec, err := resolveSpec(path)
	if err != nil {
		return fmt.Errorf("unable to list patches: %s", err)
	}

	for _, patch := range spec.Patches() {
		state := "not applied"
		if patch.Applied {
			state = fmt.Sprintf("applied, strip %d", patch.Strip)
		}
		if patch.Ignored {
			state += ", ignored"
		}
		fmt.Printf("%d: %s (%s)\n", patch.Index, patch.Filename, state)
	}

	return nil
}

func makeCmdPatchList() *commander.Command {
	return &commander.Command{
		Run:       gbpPatchList,
		UsageLine: "list [<spec>]",
		Short:     "list patches of a spec file",
		Long: `
Lists all patches referenced by the spec file in numeric order,
with their application state.

ex:
  $ gbp patch list
`,
		Flag: *flag.NewFlagSet("gbp-patch-list", flag.ExitOnError),
	}
}
