package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gbp-dev/gbp/rpm"
	"github.com/gbp-dev/gbp/utils"
)

func gbpSpecFilter(cmd *commander.Command, args []string) error {
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
		return fmt.Errorf("unable to filter: %s", err)
	}

	env := rpm.BuildEnv{
		Arch: cmd.Flag.Lookup("arch").Value.String(),
		OS:   cmd.Flag.Lookup("os").Value.String(),
		Vars: defineVars(cmd.Flag.Lookup("define").Value.Get().([]string)),
	}

	spec.FilterConditional(env.Eval)
	spec.FilterArchTags(utils.Config.DocumentPolicy())

	if cmd.Flag.Lookup("in-place").Value.Get().(bool) {
		if err = spec.Save(); err != nil {
			return fmt.Errorf("unable to filter: %s", err)
		}
		fmt.Printf("Spec %s updated successfully.\n", spec.Path)
		return nil
	}

	if output := cmd.Flag.Lookup("output").Value.String(); output != "" {
		if err = spec.SaveAs(output); err != nil {
			return fmt.Errorf("unable to filter: %s", err)
		}
		return nil
	}

	w := bufio.NewWriter(os.Stdout)
	if err = spec.WriteTo(w); err != nil {
		return fmt.Errorf("unable to filter: %s", err)
	}
	return w.Flush()
}

func makeCmdSpecFilter() *commander.Command {
	cmd := &commander.Command{
		Run:       gbpSpecFilter,
		UsageLine: "filter [<spec>]",
		Short:     "resolve build conditionals in a spec file",
		Long: `
Evaluates %if/%ifarch/%ifos conditionals against the given build
environment: blocks known to be false are dropped, blocks known to
be true lose their markers, anything undecidable is left untouched.
The result is printed to stdout unless -in-place or -output is given.

ex:
  $ gbp spec filter -arch=x86_64 -define='with_tests=1'
  $ gbp spec filter -os=linux -in-place
`,
		Flag: *flag.NewFlagSet("gbp-spec-filter", flag.ExitOnError),
	}

	cmd.Flag.String("arch", "", "target architecture for %ifarch conditionals")
	cmd.Flag.String("os", "", "target operating system for %ifos conditionals")
	cmd.Flag.Var(&definesFlag{}, "define", "macro definition name=value for %if conditionals (may be specified multiple times)")
	cmd.Flag.Bool("in-place", false, "write the result back to the spec file")
	cmd.Flag.String("output", "", "write the result to the given file")

	return cmd
}
