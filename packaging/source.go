package packaging

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kjk/lzma"
	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	xz "github.com/smira/go-xz"
)

// UpstreamSource is an upstream source artifact: an archive or an
// unpacked directory
type UpstreamSource struct {
	Path        string
	Base        string // filename without archive/compression extensions
	Format      string // "tar", "zip" or "" for a directory
	Compression string

	isDir  bool
	prefix string
}

// NewUpstreamSource inspects the file or directory at path. For archives
// the leading directory prefix is determined by reading the content
// in-process (no external tar invocation).
func NewUpstreamSource(path string) (*UpstreamSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to find upstream source")
	}

	u := &UpstreamSource{Path: path, isDir: info.IsDir()}
	if u.isDir {
		u.Base = filepath.Base(strings.TrimRight(path, "/"))
		u.prefix = u.Base
		return u, nil
	}

	u.Base, u.Format, u.Compression = ParseArchiveFilename(filepath.Base(path))
	if u.Format == "" {
		// extension was no help, sniff the content
		format, compression, err := DetectArchiveFormat(path)
		if err != nil {
			return nil, err
		}
		if format != "" {
			u.Format = format
		}
		if u.Compression == "" {
			u.Compression = compression
		}
		if u.Format == "" && u.Compression != "" {
			// compressed but undetectable inner format, assume tarball
			u.Format = "tar"
		}
	}

	if err := u.determinePrefix(); err != nil {
		return nil, err
	}
	return u, nil
}

// IsDir is true when the upstream source is an unpacked directory
func (u *UpstreamSource) IsDir() bool {
	return u.isDir
}

// IsOrig is true when the source qualifies as an upstream tarball
func (u *UpstreamSource) IsOrig() bool {
	return u.Format == "tar" && u.Compression != ""
}

// Prefix returns the leading directory name of the source content, empty
// when the archive has no single top-level directory
func (u *UpstreamSource) Prefix() string {
	return u.prefix
}

// GuessVersion guesses package name and version from the source filename
func (u *UpstreamSource) GuessVersion() (name, version string) {
	return GuessUpstreamVersion(filepath.Base(u.Path))
}

func (u *UpstreamSource) determinePrefix() error {
	switch u.Format {
	case "zip":
		return u.zipPrefix()
	case "tar":
		return u.tarPrefix()
	}
	return errors.Errorf("unsupported archive format in %s, unable to determine prefix", u.Path)
}

func (u *UpstreamSource) zipPrefix() error {
	archive, err := zip.OpenReader(u.Path)
	if err != nil {
		return errors.Wrapf(err, "unable to read zip archive %s", u.Path)
	}
	defer func() {
		_ = archive.Close()
	}()

	var names []string
	for _, f := range archive.File {
		names = append(names, f.Name)
	}
	u.prefix = commonPrefix(names)
	return nil
}

func (u *UpstreamSource) tarPrefix() error {
	file, err := os.Open(u.Path)
	if err != nil {
		return errors.Wrapf(err, "unable to read archive %s", u.Path)
	}
	defer func() {
		_ = file.Close()
	}()

	uncompressed, err := decompress(file, u.Compression)
	if err != nil {
		return errors.Wrapf(err, "unable to uncompress %s", u.Path)
	}

	var names []string
	archive := tar.NewReader(uncompressed)
	for {
		header, err := archive.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "unable to read tar archive %s", u.Path)
		}
		names = append(names, header.Name)
	}
	u.prefix = commonPrefix(names)
	return nil
}

func decompress(r io.Reader, compression string) (io.Reader, error) {
	switch compression {
	case "":
		return r, nil
	case "gzip":
		return pgzip.NewReader(r)
	case "bzip2":
		return bzip2.NewReader(r), nil
	case "xz":
		return xz.NewReader(r)
	case "lzma":
		return lzma.NewReader(r), nil
	}
	return nil, errors.Errorf("unsupported compression method %q", compression)
}

// commonPrefix returns the single top-level directory shared by all
// archive members, or "" when there is none
func commonPrefix(names []string) string {
	prefix := ""
	for _, name := range names {
		name = strings.TrimPrefix(name, "./")
		top, rest := name, ""
		if i := strings.Index(name, "/"); i >= 0 {
			top, rest = name[:i], name[i+1:]
		}
		if top == "" {
			continue
		}
		if rest == "" {
			// top-level plain file means no common directory,
			// unless it is the directory entry itself
			if !strings.HasSuffix(name, "/") {
				return ""
			}
		}
		if prefix == "" {
			prefix = top
		} else if prefix != top {
			return ""
		}
	}
	return prefix
}
