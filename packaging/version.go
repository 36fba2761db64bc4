// Package packaging holds RPM packaging policy helpers shared by the
// spec-file model and the console commands
package packaging

import (
	"regexp"
	"strings"
)

// Version is a full package version split into its components:
// [epoch:]upstreamversion[-release]
type Version struct {
	Epoch    string
	Upstream string
	Release  string
}

// SplitVersion parses a full version string into components
func SplitVersion(full string) Version {
	var v Version

	rest := full
	if i := strings.Index(rest, ":"); i >= 0 {
		v.Epoch = rest[:i]
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "-"); i >= 0 {
		v.Release = rest[i+1:]
		rest = rest[:i]
	}
	v.Upstream = rest
	return v
}

// String composes the full version string back from the components.
// An empty upstream version yields an empty string.
func (v Version) String() string {
	if v.Upstream == "" {
		return ""
	}
	full := v.Upstream
	if v.Epoch != "" {
		full = v.Epoch + ":" + full
	}
	if v.Release != "" {
		full += "-" + v.Release
	}
	return full
}

// Naming rules: names start with an alphanumeric; versions start with a
// digit. Both may embed unexpanded %{macros}.
var (
	packageNameRe     = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+%{}-]+$`)
	upstreamVersionRe = regexp.MustCompile(`^[0-9][a-zA-Z0-9._+%{}~]*$`)
)

// ValidPackageName reports whether name is a valid RPM package name
func ValidPackageName(name string) bool {
	return packageNameRe.MatchString(name)
}

// ValidUpstreamVersion reports whether version is a valid upstream version
func ValidUpstreamVersion(version string) bool {
	return upstreamVersionRe.MatchString(version)
}

var upstreamFilenameRes = []*regexp.Regexp{
	// name_<version>.orig.<ext>
	regexp.MustCompile(`^(?P<package>[a-z\d.+-]+)_(?P<version>[a-zA-Z\d.~+:-]+)\.orig$`),
	// name-<version> or name_<version>
	regexp.MustCompile(`^(?P<package>[a-zA-Z\d.+-]+)[-_](?P<version>[0-9][a-zA-Z\d.~+:-]*)$`),
}

// GuessUpstreamVersion guesses the package name and version from the
// filename of an upstream archive, returning ("", "") when no known
// naming convention matches.
func GuessUpstreamVersion(filename string) (name, version string) {
	base, _, _ := ParseArchiveFilename(filename[strings.LastIndex(filename, "/")+1:])
	for _, re := range upstreamFilenameRes {
		if m := re.FindStringSubmatch(base); m != nil {
			return m[1], m[2]
		}
	}
	return "", ""
}
