package cmd

import (
	"github.com/pkg/errors"
	"github.com/smira/flag"

	"github.com/gbp-dev/gbp/rpm"
	"github.com/gbp-dev/gbp/utils"
)

// Common context shared by all commands
var context struct {
	flags   *flag.FlagSet
	command string
}

// InitContext loads the configuration and sets up logging based on
// parsed command line flags. Flags always win over configuration.
func InitContext(flags *flag.FlagSet, args []string) error {
	context.flags = flags
	if len(args) > 0 {
		context.command = args[0]
	}

	// the packaging dir flag has to be applied before config loading,
	// it decides where the per-package config file is looked up
	if dir := lookupString(flags, "packaging-dir"); dir != "" {
		utils.Config.PackagingDir = dir
	}

	var err error
	configLocation := lookupString(flags, "config")
	if configLocation != "" {
		err = utils.LoadConfig(configLocation, context.command, &utils.Config)
	} else {
		err = utils.LoadConfigFiles(utils.DefaultConfigFiles(utils.Config.PackagingDir), context.command, &utils.Config)
	}
	if err != nil {
		return errors.Wrap(err, "error loading config file")
	}

	if dir := lookupString(flags, "packaging-dir"); dir != "" {
		utils.Config.PackagingDir = dir
	}
	if level := lookupString(flags, "log-level"); level != "" {
		utils.Config.LogLevel = level
	}
	if format := lookupString(flags, "log-format"); format != "" {
		utils.Config.LogFormat = format
	}
	if spec := lookupString(flags, "spec-file"); spec != "" {
		utils.Config.SpecFile = spec
	}

	utils.SetupLogger(utils.Config.LogLevel, utils.Config.LogFormat)

	return nil
}

func lookupString(flags *flag.FlagSet, name string) string {
	f := flags.Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// resolveSpec loads the spec file the command should operate on: an
// explicit path argument wins, then the configured spec-file, then
// discovery in the packaging dir (non-recursive first)
func resolveSpec(path string) (*rpm.SpecFile, error) {
	if path == "" {
		path = utils.Config.SpecFile
	}
	if path == "" {
		var err error
		path, err = rpm.GuessSpecFile(utils.Config.PackagingDir, false, "")
		if errors.Cause(err) == rpm.ErrNoSpecFile {
			path, err = rpm.GuessSpecFile(utils.Config.PackagingDir, true, "")
		}
		if err != nil {
			return nil, err
		}
	}
	return rpm.LoadSpec(path)
}
