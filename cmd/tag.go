package cmd

import (
	"strconv"
	"strings"

	"github.com/smira/commander"

	"github.com/gbp-dev/gbp/rpm"
)

// splitTagName separates the numeric suffix from a tag name as typed on
// the command line: "Patch3" becomes ("Patch", 3)
func splitTagName(name string) (string, int) {
	base := strings.TrimRight(name, "0123456789")
	if base == name {
		return name, rpm.NoIndex
	}
	index, _ := strconv.Atoi(name[len(base):])
	return base, index
}

func makeCmdTag() *commander.Command {
	return &commander.Command{
		UsageLine: "tag",
		Short:     "manage spec file header tags",
		Subcommands: []*commander.Command{
			makeCmdTagGet(),
			makeCmdTagSet(),
			makeCmdTagRemove(),
		},
	}
}
