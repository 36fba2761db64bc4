package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gbp-dev/gbp/rpm"
)

func gbpTagGet(cmd *commander.Command, args []string) error {
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
		return fmt.Errorf("unable to get tag: %s", err)
	}

	name, index := splitTagName(args[0])

	var value string
	if index != rpm.NoIndex {
		value, err = spec.GetTagIndexed(name, index)
	} else {
		var ambiguous bool
		value, ambiguous, err = spec.GetTag(name)
		if ambiguous {
			log.Warn().Msgf("Tag %s has several numbered variants, showing the first one", args[0])
		}
	}
	if err != nil {
		return fmt.Errorf("unable to get tag %s: %s", args[0], err)
	}

	fmt.Println(value)
	return nil
}

func makeCmdTagGet() *commander.Command {
	return &commander.Command{
		Run:       gbpTagGet,
		UsageLine: "get <tag> [<spec>]",
		Short:     "print value of a header tag",
		Long: `
Prints the value of a header tag. Tag name lookup is
case-insensitive, a numeric suffix selects a numbered variant.

ex:
  $ gbp tag get Version
  $ gbp tag get Source0 packaging/hello.spec
`,
		Flag: *flag.NewFlagSet("gbp-tag-get", flag.ExitOnError),
	}
}
