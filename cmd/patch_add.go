package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gbp-dev/gbp/rpm"
	"github.com/gbp-dev/gbp/utils"
)

func gbpPatchAdd(cmd *commander.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	path := ""
	if len(args) == 2 {
		path = args[1]
	}

	spec, err := resolveSpec(path)
	if err != nil {
		return fmt.Errorf("unable to add patch: %s", err)
	}

	policy := utils.Config.DocumentPolicy()
	if cmd.Flag.Lookup("no-numbers").Value.Get().(bool) {
		policy.PatchNumbering = rpm.BarePatches
	}

	index := spec.AddPatch(args[0], policy)

	if err = spec.Save(); err != nil {
		return fmt.Errorf("unable to add patch: %s", err)
	}

	if index == rpm.NoIndex {
		fmt.Printf("Patch %s added to %s.\n", args[0], spec.Path)
	} else {
		fmt.Printf("Patch%d %s added to %s.\n", index, args[0], spec.Path)
	}
	return nil
}

func makeCmdPatchAdd() *commander.Command {
	cmd := &commander.Command{
		Run:       gbpPatchAdd,
		UsageLine: "add <filename> [<spec>]",
		Short:     "add a patch to a spec file",
		Long: `
Adds a PatchN: tag for the given filename, assigning the lowest
unused patch number, and inserts the matching %patch invocation in
%prep. Indices listed in ignore-patches are never reused.

ex:
  $ gbp patch add fix-build.patch
`,
		Flag: *flag.NewFlagSet("gbp-patch-add", flag.ExitOnError),
	}

	cmd.Flag.Bool("no-numbers", false, "add a bare Patch: tag without a number")

	return cmd
}
