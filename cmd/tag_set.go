package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gbp-dev/gbp/rpm"
)

func gbpTagSet(cmd *commander.Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	path := ""
	if len(args) == 3 {
		path = args[2]
	}

	spec, err := resolveSpec(path)
	if err != nil {
		return fmt.Errorf("unable to set tag: %s", err)
	}

	name, index := splitTagName(args[0])
	if index != rpm.NoIndex {
		spec.SetTagIndexed(name, index, args[1])
	} else {
		spec.SetTag(name, args[1])
	}

	if err = spec.Save(); err != nil {
		return fmt.Errorf("unable to set tag: %s", err)
	}

	fmt.Printf("Tag %s set in %s.\n", args[0], spec.Path)
	return nil
}

func makeCmdTagSet() *commander.Command {
	return &commander.Command{
		Run:       gbpTagSet,
		UsageLine: "set <tag> <value> [<spec>]",
		Short:     "set value of a header tag",
		Long: `
Replaces the value of a header tag in place, preserving the line's
position and formatting. A tag not present yet is inserted next to
its kin in the preamble. Setting an empty value removes the tag.

ex:
  $ gbp tag set Version 2.1
  $ gbp tag set Patch3 fix-build.patch
`,
		Flag: *flag.NewFlagSet("gbp-tag-set", flag.ExitOnError),
	}
}
