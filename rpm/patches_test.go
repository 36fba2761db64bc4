package rpm

import (
	"strings"

	. "gopkg.in/check.v1"
)

type PatchSuite struct {
	doc *Document
}

var _ = Suite(&PatchSuite{})

func (s *PatchSuite) SetUpTest(c *C) {
	var err error
	s.doc, err = ParseString(specText)
	c.Assert(err, IsNil)
}

func (s *PatchSuite) TestPatches(c *C) {
	patches := s.doc.Patches()
	c.Assert(patches, HasLen, 2)

	c.Check(patches[0].Index, Equals, 0)
	c.Check(patches[0].Filename, Equals, "my.patch")
	c.Check(patches[0].Applied, Equals, true)
	c.Check(patches[0].Strip, Equals, 0)
	c.Check(patches[0].Ignored, Equals, false)

	c.Check(patches[1].Index, Equals, 2)
	c.Check(patches[1].Filename, Equals, "my3.patch")
	c.Check(patches[1].Applied, Equals, true)
	c.Check(patches[1].Strip, Equals, 2)
	c.Check(patches[1].Ignored, Equals, true)
}

func (s *PatchSuite) TestSources(c *C) {
	sources := s.doc.Sources()
	c.Assert(sources, HasLen, 2)
	c.Check(sources[0].Index, Equals, 0)
	c.Check(sources[0].Filename, Equals, "gbp-test-1.0.tar.bz2")
	c.Check(sources[1].Index, Equals, 10)
}

func (s *PatchSuite) TestPatchMacroArgs(c *C) {
	strip, index := parsePatchMacroArgs("-p1")
	c.Check(strip, Equals, 1)
	c.Check(index, Equals, NoIndex)

	strip, index = parsePatchMacroArgs("-p 3 -P 7")
	c.Check(strip, Equals, 3)
	c.Check(index, Equals, 7)

	strip, index = parsePatchMacroArgs("-P2 -b .orig")
	c.Check(strip, Equals, 0)
	c.Check(index, Equals, 2)
}

func (s *PatchSuite) TestAddPatchNumbered(c *C) {
	// 0 and 2 are taken, 2 also ignored: lowest unused is 1
	index := s.doc.AddPatch("new.patch", DefaultPolicy)
	c.Check(index, Equals, 1)

	value, err := s.doc.GetTagIndexed("patch", 1)
	c.Assert(err, IsNil)
	c.Check(value, Equals, "new.patch")

	// %patch invocation inserted as well
	c.Check(strings.Contains(s.doc.String(), "%patch1 -p1"), Equals, true)
}

func (s *PatchSuite) TestAddPatchSkipsPolicyIgnores(c *C) {
	pol := DefaultPolicy
	pol.IgnorePatches = []int{1, 3}

	index := s.doc.AddPatch("new.patch", pol)
	c.Check(index, Equals, 4)
}

func (s *PatchSuite) TestAddPatchBare(c *C) {
	pol := DefaultPolicy
	pol.PatchNumbering = BarePatches

	index := s.doc.AddPatch("new.patch", pol)
	c.Check(index, Equals, NoIndex)

	// bare tag, value column still aligned to the neighbouring Patch2 line
	c.Check(strings.Contains(s.doc.String(), "Patch:      new.patch"), Equals, true)
}

func (s *PatchSuite) TestAddPatchNoMacros(c *C) {
	pol := DefaultPolicy
	pol.PatchMacros = false

	before := s.doc.Len()
	s.doc.AddPatch("new.patch", pol)
	c.Check(s.doc.Len(), Equals, before+1)
}

func (s *PatchSuite) TestAddPatchMarker(c *C) {
	doc, err := ParseString(`Name: a
Source0: a.tar.gz

%prep
%setup
# Gbp-Patch-Macros
%build
`)
	c.Assert(err, IsNil)

	index := doc.AddPatch("first.patch", DefaultPolicy)
	c.Check(index, Equals, 0)

	// macro goes right after the marker, not after %setup
	lines := doc.Lines()
	for i, line := range lines {
		if line.Kind == KindComment && line.Directive == "patch-macros" {
			c.Check(lines[i+1].Kind, Equals, KindPatchMacro)
			c.Check(lines[i+1].MacroIndex, Equals, 0)
			return
		}
	}
	c.Fatal("marker not found")
}

func (s *PatchSuite) TestAddPatchAlignment(c *C) {
	s.doc.AddPatch("new.patch", DefaultPolicy)

	// value column of the new tag mimics the neighbouring Patch2 line
	c.Check(strings.Contains(s.doc.String(), "Patch1:     new.patch"), Equals, true)
}

func (s *PatchSuite) TestRemovePatch(c *C) {
	err := s.doc.RemovePatch(0)
	c.Assert(err, IsNil)

	_, err = s.doc.GetTagIndexed("patch", 0)
	c.Check(err, Equals, ErrTagNotFound)
	c.Check(strings.Contains(s.doc.String(), "%patch0"), Equals, false)

	// the conditional wrapper of %patch2 survives its sibling's removal
	c.Check(strings.Contains(s.doc.String(), "%if 0%{?patch2}"), Equals, true)
}

func (s *PatchSuite) TestRemovePatchMissing(c *C) {
	before := s.doc.String()

	err := s.doc.RemovePatch(5)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, "patch 5 not found")
	c.Check(s.doc.String(), Equals, before)
}
