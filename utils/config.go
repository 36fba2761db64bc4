package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	ini "gopkg.in/ini.v1"

	"github.com/gbp-dev/gbp/rpm"
)

// ConfigStructure is the resolved gbp configuration: built-in defaults
// overridden by the [DEFAULT] section of each config file, overridden by
// the per-command section, overridden by command line flags.
type ConfigStructure struct {
	// General
	SpecFile        string
	PackagingDir    string
	UpstreamBranch  string
	PackagingBranch string
	LogLevel        string
	LogFormat       string

	// Patch management
	PatchNumbers   bool
	PatchMacros    bool
	IgnorePatches  []int
	FilterArchTags bool
}

// Config is the gbp configuration, shared by all commands
var Config = ConfigStructure{
	PackagingDir:    ".",
	UpstreamBranch:  "upstream",
	PackagingBranch: "master",
	LogLevel:        "info",
	LogFormat:       "default",
	PatchNumbers:    true,
	PatchMacros:     true,
}

// DefaultConfigFiles lists config file locations in the order they are
// applied; later files win
func DefaultConfigFiles(packagingDir string) []string {
	return []string{
		"/etc/gbp/gbp.conf",
		filepath.Join(os.Getenv("HOME"), ".gbp.conf"),
		filepath.Join(packagingDir, ".gbp.conf"),
	}
}

// LoadConfig loads one INI config file into config, applying the
// [DEFAULT] section first and the per-command section on top
func LoadConfig(filename, command string, config *ConfigStructure) error {
	file, err := ini.Load(filename)
	if err != nil {
		return err
	}

	applySection(file.Section(ini.DefaultSection), config)
	if command != "" && file.HasSection(command) {
		applySection(file.Section(command), config)
	}
	return nil
}

// LoadConfigFiles applies every existing file from files in order;
// missing files are skipped, unreadable ones are an error
func LoadConfigFiles(files []string, command string, config *ConfigStructure) error {
	for _, filename := range files {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			continue
		}
		if err := LoadConfig(filename, command, config); err != nil {
			return err
		}
	}
	return nil
}

func applySection(section *ini.Section, config *ConfigStructure) {
	for _, key := range section.Keys() {
		switch strings.ToLower(key.Name()) {
		case "spec-file":
			config.SpecFile = key.String()
		case "packaging-dir":
			config.PackagingDir = key.String()
		case "upstream-branch":
			config.UpstreamBranch = key.String()
		case "packaging-branch":
			config.PackagingBranch = key.String()
		case "log-level":
			config.LogLevel = key.String()
		case "log-format":
			config.LogFormat = key.String()
		case "patch-numbers":
			config.PatchNumbers = boolKey(key, config.PatchNumbers)
		case "patch-macros":
			config.PatchMacros = boolKey(key, config.PatchMacros)
		case "filter-arch-tags":
			config.FilterArchTags = boolKey(key, config.FilterArchTags)
		case "ignore-patches":
			config.IgnorePatches = key.Ints(" ")
		default:
			log.Warn().Msgf("Unknown configuration key '%s', ignoring", key.Name())
		}
	}
}

func boolKey(key *ini.Key, fallback bool) bool {
	value, err := key.Bool()
	if err != nil {
		log.Warn().Msgf("Invalid boolean value '%s' for '%s', keeping default", key.String(), key.Name())
		return fallback
	}
	return value
}

// DocumentPolicy derives the immutable editing policy handed to the
// spec-file document model
func (conf *ConfigStructure) DocumentPolicy() rpm.Policy {
	numbering := rpm.NumberedPatches
	if !conf.PatchNumbers {
		numbering = rpm.BarePatches
	}
	return rpm.Policy{
		PatchNumbering: numbering,
		PatchMacros:    conf.PatchMacros,
		FilterArchTags: conf.FilterArchTags,
		IgnorePatches:  append([]int(nil), conf.IgnorePatches...),
	}
}
