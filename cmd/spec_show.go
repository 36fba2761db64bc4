package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

func gbpSpecShow(cmd *commander.Command, args []string) error {
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
		return fmt.Errorf("unable to show: %s", err)
	}

	fmt.Printf("Spec: %s\n", spec.Path)
	fmt.Printf("Name: %s\n", spec.Name())
	fmt.Printf("Version: %s\n", spec.FullVersion())
	if packager := spec.Packager(); packager != "" {
		fmt.Printf("Packager: %s\n", packager)
	}

	fmt.Printf("Sources:\n")
	for _, source := range spec.Sources() {
		fmt.Printf("  %d: %s\n", source.Index, source.Filename)
	}

	fmt.Printf("Patches:\n")
	for _, patch := range spec.Patches() {
		annotations := ""
		if patch.Applied {
			annotations = fmt.Sprintf(" [applied, strip %d]", patch.Strip)
		}
		if patch.Ignored {
			annotations += " [ignored]"
		}
		fmt.Printf("  %d: %s%s\n", patch.Index, patch.Filename, annotations)
	}

	if orig := spec.OrigSource(); orig != nil {
		fmt.Printf("Upstream archive: %s (%s", orig.Filename, orig.Format)
		if orig.Compression != "" {
			fmt.Printf(", %s", orig.Compression)
		}
		fmt.Printf(")\n")
	}

	if undefined := spec.UndefinedTags(); len(undefined) > 0 {
		fmt.Printf("Undefined tags:\n")
		for _, tag := range undefined {
			fmt.Printf("  %s\n", tag)
		}
	}

	return nil
}

func makeCmdSpecShow() *commander.Command {
	return &commander.Command{
		Run:       gbpSpecShow,
		UsageLine: "show [<spec>]",
		Short:     "show summary of a spec file",
		Long: `
Displays the package name, version, sources and patches of a spec
file. Without an argument the spec file is discovered in the
packaging directory.

ex:
  $ gbp spec show
  $ gbp spec show packaging/hello.spec
`,
		Flag: *flag.NewFlagSet("gbp-spec-show", flag.ExitOnError),
	}
}
