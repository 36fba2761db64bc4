package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gbp-dev/gbp/rpm"
)

func gbpTagRemove(cmd *commander.Command, args []string) error {
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
		return fmt.Errorf("unable to remove tag: %s", err)
	}

	name, index := splitTagName(args[0])
	if index != rpm.NoIndex {
		spec.RemoveTagIndexed(name, index)
	} else {
		spec.RemoveTag(name)
	}

	if err = spec.Save(); err != nil {
		return fmt.Errorf("unable to remove tag: %s", err)
	}

	fmt.Printf("Tag %s removed from %s.\n", args[0], spec.Path)
	return nil
}

func makeCmdTagRemove() *commander.Command {
	return &commander.Command{
		Run:       gbpTagRemove,
		UsageLine: "remove <tag> [<spec>]",
		Short:     "remove a header tag",
		Long: `
Removes a header tag from the spec file. Removing an absent tag is
not an error.

ex:
  $ gbp tag remove Epoch
`,
		Flag: *flag.NewFlagSet("gbp-tag-remove", flag.ExitOnError),
	}
}
