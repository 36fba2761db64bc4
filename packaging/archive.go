package packaging

import (
	"strings"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
)

// Compression method per filename extension
var compressionExts = map[string]string{
	"gz":   "gzip",
	"bz2":  "bzip2",
	"xz":   "xz",
	"lzma": "lzma",
}

// Supported archive formats
var archiveFormats = map[string]bool{
	"tar": true,
	"zip": true,
}

// Combined extensions mapping to archive format + compression
var combinedExts = map[string][2]string{
	"tgz":  {"tar", "gzip"},
	"tbz2": {"tar", "bzip2"},
	"tlz":  {"tar", "lzma"},
	"txz":  {"tar", "xz"},
}

// ParseArchiveFilename splits a filename into its base name (without the
// archive and compression extensions), archive format and compression
// method. Unrecognized parts come back empty.
func ParseArchiveFilename(filename string) (base, format, compression string) {
	base = filename

	split := strings.Split(filename, ".")
	if len(split) < 2 {
		return base, "", ""
	}

	last := split[len(split)-1]
	if combined, ok := combinedExts[last]; ok {
		return strings.Join(split[:len(split)-1], "."), combined[0], combined[1]
	}
	if archiveFormats[last] {
		return strings.Join(split[:len(split)-1], "."), last, ""
	}
	if method, ok := compressionExts[last]; ok {
		base = strings.Join(split[:len(split)-1], ".")
		compression = method
		if len(split) > 2 && archiveFormats[split[len(split)-2]] {
			base = strings.Join(split[:len(split)-2], ".")
			format = split[len(split)-2]
		}
	}
	return base, format, compression
}

// DetectArchiveFormat sniffs archive format and compression from the file
// contents, for sources whose extension is absent or lies
func DetectArchiveFormat(path string) (format, compression string, err error) {
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return "", "", errors.Wrapf(err, "unable to detect type of %s", path)
	}

	switch kind.Extension {
	case "tar":
		return "tar", "", nil
	case "zip":
		return "zip", "", nil
	case "gz":
		return "", "gzip", nil
	case "bz2":
		return "", "bzip2", nil
	case "xz":
		return "", "xz", nil
	}
	return "", "", nil
}
