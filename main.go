package main

import (
	"os"

	"github.com/gbp-dev/gbp/cmd"
	"github.com/gbp-dev/gbp/gbp"
)

// Version variable, filled in at link time
var Version string

func main() {
	if Version == "" {
		Version = "unknown"
	}

	gbp.Version = Version

	os.Exit(cmd.Run(cmd.RootCommand(), os.Args[1:], true))
}
