package cmd

import (
	"github.com/smira/commander"
)

func makeCmdPatch() *commander.Command {
	return &commander.Command{
		UsageLine: "patch",
		Short:     "manage patches of a spec file",
		Subcommands: []*commander.Command{
			makeCmdPatchList(),
			makeCmdPatchAdd(),
			makeCmdPatchDrop(),
		},
	}
}
