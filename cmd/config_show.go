package cmd

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/gbp-dev/gbp/utils"
)

func gbpConfigShow(cmd *commander.Command, args []string) error {
	rendered := configToString(reflect.ValueOf(utils.Config))
	if rendered == "" {
		return fmt.Errorf("error processing configuration")
	}

	fmt.Println(rendered)
	return nil
}

func configToString(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice:
		var parts []string
		for i := 0; i < v.Len(); i++ {
			parts = append(parts, configToString(v.Index(i)))
		}
		return strings.Join(parts, ", ")
	case reflect.Struct:
		var parts []string
		typ := v.Type()
		for i := 0; i < typ.NumField(); i++ {
			parts = append(parts, typ.Field(i).Name+": "+configToString(v.Field(i)))
		}
		return strings.Join(parts, "\n")
	case reflect.String:
		return v.String()
	default:
		return ""
	}
}

func makeCmdConfigShow() *commander.Command {
	return &commander.Command{
		Run:       gbpConfigShow,
		UsageLine: "show",
		Short:     "show current configuration",
		Long: `
Shows the effective configuration after merging all config files
and command line flags.

ex:
  $ gbp config show
`,
		Flag: *flag.NewFlagSet("gbp-config-show", flag.ExitOnError),
	}
}
