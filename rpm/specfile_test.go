package rpm

import (
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"
)

type SpecFileSuite struct {
	dir  string
	path string
}

var _ = Suite(&SpecFileSuite{})

func (s *SpecFileSuite) SetUpTest(c *C) {
	s.dir = c.MkDir()
	s.path = filepath.Join(s.dir, "gbp-test.spec")
	err := os.WriteFile(s.path, []byte(specText), 0644)
	c.Assert(err, IsNil)
}

func (s *SpecFileSuite) TestLoadSpec(c *C) {
	spec, err := LoadSpec(s.path)
	c.Assert(err, IsNil)

	c.Check(spec.Path, Equals, s.path)
	c.Check(spec.Dir, Equals, s.dir)
	c.Check(spec.String(), Equals, specText)
}

func (s *SpecFileSuite) TestLoadSpecMissing(c *C) {
	_, err := LoadSpec(filepath.Join(s.dir, "nosuch.spec"))
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, "error reading spec file: .*")
}

func (s *SpecFileSuite) TestLoadSpecMalformed(c *C) {
	path := filepath.Join(s.dir, "broken.spec")
	err := os.WriteFile(path, []byte("Name: a\nnot a tag\n"), 0644)
	c.Assert(err, IsNil)

	_, err = LoadSpec(path)
	c.Check(err, ErrorMatches, "error parsing .*: malformed spec, line 2: .*")
}

func (s *SpecFileSuite) TestSave(c *C) {
	spec, err := LoadSpec(s.path)
	c.Assert(err, IsNil)

	spec.SetTag("Version", "2.0")
	err = spec.Save()
	c.Assert(err, IsNil)

	reloaded, err := LoadSpec(s.path)
	c.Assert(err, IsNil)
	c.Check(reloaded.Version(), Equals, "2.0")

	// no temp files left behind
	entries, err := os.ReadDir(s.dir)
	c.Assert(err, IsNil)
	c.Check(entries, HasLen, 1)
}

func (s *SpecFileSuite) TestSaveAs(c *C) {
	spec, err := LoadSpec(s.path)
	c.Assert(err, IsNil)

	target := filepath.Join(s.dir, "copy.spec")
	err = spec.SaveAs(target)
	c.Assert(err, IsNil)

	data, err := os.ReadFile(target)
	c.Assert(err, IsNil)
	c.Check(string(data), Equals, specText)
}

func (s *SpecFileSuite) TestAccessors(c *C) {
	spec, err := LoadSpec(s.path)
	c.Assert(err, IsNil)

	c.Check(spec.Name(), Equals, "gbp-test")
	c.Check(spec.Version(), Equals, "1.0")
	c.Check(spec.Release(), Equals, "1")
	c.Check(spec.Epoch(), Equals, "")
	c.Check(spec.Packager(), Equals, "")
	c.Check(spec.FullVersion(), Equals, "1.0-1")
}

func (s *SpecFileSuite) TestOrigSource(c *C) {
	spec, err := LoadSpec(s.path)
	c.Assert(err, IsNil)

	orig := spec.OrigSource()
	c.Assert(orig, NotNil)
	c.Check(orig.Filename, Equals, "gbp-test-1.0.tar.bz2")
	c.Check(orig.Base, Equals, "gbp-test-1.0")
	c.Check(orig.Format, Equals, "tar")
	c.Check(orig.Compression, Equals, "bzip2")
}

func (s *SpecFileSuite) TestOrigSourceURL(c *C) {
	doc, err := ParseString("Name: hello\nSource0: https://example.com/dist/hello-1.0.tar.gz\n")
	c.Assert(err, IsNil)
	spec := &SpecFile{Document: doc}

	orig := spec.OrigSource()
	c.Assert(orig, NotNil)
	c.Check(orig.Filename, Equals, "hello-1.0.tar.gz")
	c.Check(orig.FullPath, Equals, "https://example.com/dist/hello-1.0.tar.gz")
}

func (s *SpecFileSuite) TestOrigSourcePrefersName(c *C) {
	doc, err := ParseString("Name: hello\nSource0: addon.tar.gz\nSource1: hello-1.0.tar.gz\n")
	c.Assert(err, IsNil)
	spec := &SpecFile{Document: doc}

	orig := spec.OrigSource()
	c.Assert(orig, NotNil)
	c.Check(orig.Filename, Equals, "hello-1.0.tar.gz")
}

func (s *SpecFileSuite) TestOrigSourceNone(c *C) {
	doc, err := ParseString("Name: hello\nSource0: hello.init\n")
	c.Assert(err, IsNil)
	spec := &SpecFile{Document: doc}

	c.Check(spec.OrigSource(), IsNil)
}

type GuessSuite struct {
	dir string
}

var _ = Suite(&GuessSuite{})

func (s *GuessSuite) SetUpTest(c *C) {
	s.dir = c.MkDir()
}

func (s *GuessSuite) write(c *C, name string) string {
	path := filepath.Join(s.dir, name)
	err := os.MkdirAll(filepath.Dir(path), 0755)
	c.Assert(err, IsNil)
	err = os.WriteFile(path, []byte("Name: a\n"), 0644)
	c.Assert(err, IsNil)
	return path
}

func (s *GuessSuite) TestSingle(c *C) {
	expected := s.write(c, "hello.spec")
	s.write(c, "README")

	path, err := GuessSpecFile(s.dir, false, "")
	c.Assert(err, IsNil)
	c.Check(path, Equals, expected)
}

func (s *GuessSuite) TestNone(c *C) {
	s.write(c, "README")

	_, err := GuessSpecFile(s.dir, false, "")
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, ".*no spec file found")
}

func (s *GuessSuite) TestMultiple(c *C) {
	s.write(c, "a.spec")
	s.write(c, "b.spec")

	_, err := GuessSpecFile(s.dir, false, "")
	c.Check(err, ErrorMatches, "multiple spec files found in .*")
}

func (s *GuessSuite) TestPreferred(c *C) {
	s.write(c, "a.spec")
	expected := s.write(c, "b.spec")

	path, err := GuessSpecFile(s.dir, false, "b.spec")
	c.Assert(err, IsNil)
	c.Check(path, Equals, expected)
}

func (s *GuessSuite) TestRecursive(c *C) {
	expected := s.write(c, "packaging/hello.spec")

	_, err := GuessSpecFile(s.dir, false, "")
	c.Check(err, NotNil)

	path, err := GuessSpecFile(s.dir, true, "")
	c.Assert(err, IsNil)
	c.Check(path, Equals, expected)
}
