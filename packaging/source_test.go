package packaging

import (
	"archive/zip"
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"
)

type SourceSuite struct {
	dir string
}

var _ = Suite(&SourceSuite{})

func (s *SourceSuite) SetUpTest(c *C) {
	s.dir = c.MkDir()
}

func (s *SourceSuite) TestTarball(c *C) {
	path := filepath.Join(s.dir, "hello-1.0.tar.gz")
	writeTarGz(c, path, map[string]string{
		"hello-1.0/README":     "hi",
		"hello-1.0/src/main.c": "int main() {}",
	})

	source, err := NewUpstreamSource(path)
	c.Assert(err, IsNil)

	c.Check(source.IsDir(), Equals, false)
	c.Check(source.IsOrig(), Equals, true)
	c.Check(source.Base, Equals, "hello-1.0")
	c.Check(source.Format, Equals, "tar")
	c.Check(source.Compression, Equals, "gzip")
	c.Check(source.Prefix(), Equals, "hello-1.0")
}

func (s *SourceSuite) TestTarballNoPrefix(c *C) {
	path := filepath.Join(s.dir, "hello-1.0.tar.gz")
	writeTarGz(c, path, map[string]string{
		"README": "hi",
		"main.c": "int main() {}",
	})

	source, err := NewUpstreamSource(path)
	c.Assert(err, IsNil)
	c.Check(source.Prefix(), Equals, "")
}

func (s *SourceSuite) TestTarballMixedPrefix(c *C) {
	path := filepath.Join(s.dir, "hello-1.0.tar.gz")
	writeTarGz(c, path, map[string]string{
		"hello-1.0/README": "hi",
		"other/main.c":     "int main() {}",
	})

	source, err := NewUpstreamSource(path)
	c.Assert(err, IsNil)
	c.Check(source.Prefix(), Equals, "")
}

func (s *SourceSuite) TestTarballMisleadingName(c *C) {
	// gzip'd tarball without a telling extension, content sniffing
	// has to take over
	path := filepath.Join(s.dir, "snapshot")
	writeTarGz(c, path, map[string]string{"hello-1.0/README": "hi"})

	source, err := NewUpstreamSource(path)
	c.Assert(err, IsNil)
	c.Check(source.Format, Equals, "tar")
	c.Check(source.Compression, Equals, "gzip")
	c.Check(source.Prefix(), Equals, "hello-1.0")
}

func (s *SourceSuite) TestZip(c *C) {
	path := filepath.Join(s.dir, "hello-1.0.zip")

	file, err := os.Create(path)
	c.Assert(err, IsNil)
	zw := zip.NewWriter(file)
	for _, name := range []string{"hello-1.0/README", "hello-1.0/main.c"} {
		w, err := zw.Create(name)
		c.Assert(err, IsNil)
		_, err = w.Write([]byte("content"))
		c.Assert(err, IsNil)
	}
	c.Assert(zw.Close(), IsNil)
	c.Assert(file.Close(), IsNil)

	source, err := NewUpstreamSource(path)
	c.Assert(err, IsNil)
	c.Check(source.Format, Equals, "zip")
	c.Check(source.IsOrig(), Equals, false)
	c.Check(source.Prefix(), Equals, "hello-1.0")
}

func (s *SourceSuite) TestDirectory(c *C) {
	path := filepath.Join(s.dir, "hello-1.0")
	err := os.Mkdir(path, 0755)
	c.Assert(err, IsNil)

	source, err := NewUpstreamSource(path)
	c.Assert(err, IsNil)
	c.Check(source.IsDir(), Equals, true)
	c.Check(source.IsOrig(), Equals, false)
	c.Check(source.Base, Equals, "hello-1.0")
	c.Check(source.Prefix(), Equals, "hello-1.0")
}

func (s *SourceSuite) TestMissing(c *C) {
	_, err := NewUpstreamSource(filepath.Join(s.dir, "nosuch.tar.gz"))
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, "unable to find upstream source: .*")
}

func (s *SourceSuite) TestGuessVersion(c *C) {
	path := filepath.Join(s.dir, "hello-2.10.tar.gz")
	writeTarGz(c, path, map[string]string{"hello-2.10/README": "hi"})

	source, err := NewUpstreamSource(path)
	c.Assert(err, IsNil)

	name, version := source.GuessVersion()
	c.Check(name, Equals, "hello")
	c.Check(version, Equals, "2.10")
}
