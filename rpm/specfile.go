package rpm

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/gbp-dev/gbp/packaging"
)

// SpecFile binds a parsed Document to its location on disk
type SpecFile struct {
	*Document
	Path string
	Dir  string
}

// LoadSpec reads and parses a spec file
func LoadSpec(path string) (*SpecFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading spec file")
	}
	defer func() {
		_ = file.Close()
	}()

	doc, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing %s", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	return &SpecFile{Document: doc, Path: abs, Dir: filepath.Dir(abs)}, nil
}

// Save writes the document back to its original location
func (s *SpecFile) Save() error {
	return s.SaveAs(s.Path)
}

// SaveAs writes the document to path atomically (temp file + rename)
func (s *SpecFile) SaveAs(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gbp-*.spec")
	if err != nil {
		return errors.Wrap(err, "unable to write spec file")
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.WriteString(s.Document.String()); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "unable to write spec file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "unable to write spec file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "unable to write spec file")
}

func (s *SpecFile) tagOrEmpty(name string) string {
	value, _, err := s.GetTag(name)
	if err != nil {
		return ""
	}
	return value
}

// Name returns the package name, "" when undeclared
func (s *SpecFile) Name() string {
	return s.tagOrEmpty("name")
}

// Version returns the upstream version
func (s *SpecFile) Version() string {
	return s.tagOrEmpty("version")
}

// Release returns the package release
func (s *SpecFile) Release() string {
	return s.tagOrEmpty("release")
}

// Epoch returns the package epoch, "" when undeclared
func (s *SpecFile) Epoch() string {
	return s.tagOrEmpty("epoch")
}

// Packager returns the packager, "" when undeclared
func (s *SpecFile) Packager() string {
	return s.tagOrEmpty("packager")
}

// FullVersion composes [epoch:]version[-release]
func (s *SpecFile) FullVersion() string {
	v := packaging.Version{
		Epoch:    s.Epoch(),
		Upstream: s.Version(),
		Release:  s.Release(),
	}
	return v.String()
}

// OrigSource describes the upstream source archive referenced by a spec
type OrigSource struct {
	Filename    string // archive basename
	FullPath    string // Source tag value as written, possibly a URL
	Base        string // basename without archive extensions
	Format      string
	Compression string
}

// OrigSource guesses the primary upstream archive among the Source tags:
// the first archive whose name starts with the package name wins, else the
// first archive in numeric tag order. Returns nil when the spec references
// no archive at all.
func (s *SpecFile) OrigSource() *OrigSource {
	name := s.Name()
	var first *OrigSource

	for _, src := range s.Sources() {
		filename := path.Base(src.Filename)
		base, format, compression := packaging.ParseArchiveFilename(filename)
		if format == "" {
			continue
		}
		orig := &OrigSource{
			Filename:    filename,
			FullPath:    src.Filename,
			Base:        base,
			Format:      format,
			Compression: compression,
		}
		if name != "" && strings.HasPrefix(filename, name) {
			return orig
		}
		if first == nil {
			first = orig
		}
	}
	return first
}
