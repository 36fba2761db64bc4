package cmd

import (
	"strings"

	"github.com/smira/commander"
)

type definesFlag struct {
	defines []string
}

func (d *definesFlag) Set(value string) error {
	d.defines = append(d.defines, value)
	return nil
}

func (d *definesFlag) Get() interface{} {
	return d.defines
}

func (d *definesFlag) String() string {
	return strings.Join(d.defines, ",")
}

// defineVars turns collected name=value pairs into a macro table, a bare
// name counts as defined with value "1"
func defineVars(defines []string) map[string]string {
	vars := make(map[string]string, len(defines))
	for _, define := range defines {
		name, value := define, "1"
		if i := strings.Index(define, "="); i >= 0 {
			name, value = define[:i], define[i+1:]
		}
		vars[name] = value
	}
	return vars
}

func makeCmdSpec() *commander.Command {
	return &commander.Command{
		UsageLine: "spec",
		Short:     "inspect and transform spec files",
		Subcommands: []*commander.Command{
			makeCmdSpecShow(),
			makeCmdSpecFilter(),
		},
	}
}
