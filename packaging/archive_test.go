package packaging

import (
	"archive/tar"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
	. "gopkg.in/check.v1"
)

type ArchiveSuite struct{}

var _ = Suite(&ArchiveSuite{})

func (s *ArchiveSuite) TestParseArchiveFilename(c *C) {
	base, format, compression := ParseArchiveFilename("hello-1.0.tar.gz")
	c.Check(base, Equals, "hello-1.0")
	c.Check(format, Equals, "tar")
	c.Check(compression, Equals, "gzip")

	base, format, compression = ParseArchiveFilename("hello-1.0.tar.bz2")
	c.Check(base, Equals, "hello-1.0")
	c.Check(format, Equals, "tar")
	c.Check(compression, Equals, "bzip2")

	base, format, compression = ParseArchiveFilename("hello-1.0.tar")
	c.Check(base, Equals, "hello-1.0")
	c.Check(format, Equals, "tar")
	c.Check(compression, Equals, "")

	base, format, compression = ParseArchiveFilename("hello-1.0.zip")
	c.Check(base, Equals, "hello-1.0")
	c.Check(format, Equals, "zip")
	c.Check(compression, Equals, "")
}

func (s *ArchiveSuite) TestParseArchiveFilenameCombined(c *C) {
	base, format, compression := ParseArchiveFilename("hello-1.0.tgz")
	c.Check(base, Equals, "hello-1.0")
	c.Check(format, Equals, "tar")
	c.Check(compression, Equals, "gzip")

	base, format, compression = ParseArchiveFilename("hello-1.0.txz")
	c.Check(base, Equals, "hello-1.0")
	c.Check(format, Equals, "tar")
	c.Check(compression, Equals, "xz")
}

func (s *ArchiveSuite) TestParseArchiveFilenameCompressedOnly(c *C) {
	base, format, compression := ParseArchiveFilename("hello.patch.gz")
	c.Check(base, Equals, "hello.patch")
	c.Check(format, Equals, "")
	c.Check(compression, Equals, "gzip")
}

func (s *ArchiveSuite) TestParseArchiveFilenameUnknown(c *C) {
	base, format, compression := ParseArchiveFilename("README")
	c.Check(base, Equals, "README")
	c.Check(format, Equals, "")
	c.Check(compression, Equals, "")

	base, format, compression = ParseArchiveFilename("hello.init")
	c.Check(base, Equals, "hello.init")
	c.Check(format, Equals, "")
	c.Check(compression, Equals, "")
}

func (s *ArchiveSuite) TestDetectArchiveFormat(c *C) {
	dir := c.MkDir()

	path := filepath.Join(dir, "content")
	writeTarGz(c, path, map[string]string{"hello-1.0/README": "hi"})

	format, compression, err := DetectArchiveFormat(path)
	c.Assert(err, IsNil)
	c.Check(format, Equals, "")
	c.Check(compression, Equals, "gzip")

	plain := filepath.Join(dir, "plain")
	err = os.WriteFile(plain, []byte("just text"), 0644)
	c.Assert(err, IsNil)

	format, compression, err = DetectArchiveFormat(plain)
	c.Assert(err, IsNil)
	c.Check(format, Equals, "")
	c.Check(compression, Equals, "")
}

// writeTarGz builds a gzip-compressed tarball with the given members
func writeTarGz(c *C, path string, members map[string]string) {
	file, err := os.Create(path)
	c.Assert(err, IsNil)

	gz := pgzip.NewWriter(file)
	tw := tar.NewWriter(gz)
	for name, content := range members {
		err = tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(content))})
		c.Assert(err, IsNil)
		_, err = tw.Write([]byte(content))
		c.Assert(err, IsNil)
	}
	c.Assert(tw.Close(), IsNil)
	c.Assert(gz.Close(), IsNil)
	c.Assert(file.Close(), IsNil)
}
