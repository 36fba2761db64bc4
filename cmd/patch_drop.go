package cmd

import (
	"fmt"
	"strconv"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

func gbpPatchDrop(cmd *commander.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		cmd.Usage()
		return commander.ErrCommandError
	}

	path := ""
	if len(args) == 2 {
		path = args[1]
	}

	spec, err := resolveSpec(path)
	if err != nil {
		return fmt.Errorf("unable to drop patch: %s", err)
	}

	if err = spec.RemovePatch(index); err != nil {
		return fmt.Errorf("unable to drop patch: %s", err)
	}

	if err = spec.Save(); err != nil {
		return fmt.Errorf("unable to drop patch: %s", err)
	}

	fmt.Printf("Patch%d dropped from %s.\n", index, spec.Path)
	return nil
}

func makeCmdPatchDrop() *commander.Command {
	return &commander.Command{
		Run:       gbpPatchDrop,
		UsageLine: "drop <number> [<spec>]",
		Short:     "drop a patch from a spec file",
		Long: `
Removes the PatchN: tag with the given number together with its
%patch invocation. The spec file is left untouched when no such
patch exists.

ex:
  $ gbp patch drop 3
`,
		Flag: *flag.NewFlagSet("gbp-patch-drop", flag.ExitOnError),
	}
}
