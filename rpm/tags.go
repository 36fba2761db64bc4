package rpm

import (
	"strconv"
	"strings"
	"unicode"
)

// Architecture/OS restriction tags, dropped only under an explicit
// policy flag (see Policy.FilterArchTags)
var archRestrictionTags = map[string]bool{
	"buildarch":     true,
	"excludearch":   true,
	"exclusivearch": true,
	"excludeos":     true,
	"exclusiveos":   true,
}

// Tag names rendered with non-trivial casing when gbp inserts them.
// Casing of existing tags is always preserved as first encountered.
var tagCase = map[string]string{
	"buildarch":     "BuildArch",
	"buildrequires": "BuildRequires",
	"buildroot":     "BuildRoot",
	"buildconflicts": "BuildConflicts",
	"excludearch":   "ExcludeArch",
	"exclusivearch": "ExclusiveArch",
	"excludeos":     "ExcludeOS",
	"exclusiveos":   "ExclusiveOS",
	"url":           "URL",
	"vcs":           "VCS",
	"noarch":        "NoArch",
	"nosource":      "NoSource",
	"nopatch":       "NoPatch",
	"autoreq":       "AutoReq",
	"autoprov":      "AutoProv",
	"autoreqprov":   "AutoReqProv",
}

func canonicalTagCase(name string) string {
	name = strings.ToLower(name)
	if c, ok := tagCase[name]; ok {
		return c
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func tagKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// findTag returns positions of all tag lines matching name (any index)
func (d *Document) findTag(name string) []int {
	var pos []int
	key := tagKey(name)
	for i, line := range d.lines {
		if line.Kind == KindTag && line.TagName == key {
			pos = append(pos, i)
		}
	}
	return pos
}

func (d *Document) findTagIndexed(name string, index int) int {
	key := tagKey(name)
	for i, line := range d.lines {
		if line.Kind == KindTag && line.TagName == key && line.TagIndex == index {
			return i
		}
	}
	return -1
}

// GetTag performs a case-insensitive lookup of a tag by bare name.
// When several indexed variants exist, the first occurrence's value is
// returned along with ambiguous=true; a missing tag yields ErrTagNotFound.
func (d *Document) GetTag(name string) (value string, ambiguous bool, err error) {
	pos := d.findTag(name)
	if len(pos) == 0 {
		return "", false, ErrTagNotFound
	}
	return d.lines[pos[0]].Value, len(pos) > 1, nil
}

// GetTagIndexed looks up a tag by (name, index) pair. Use NoIndex for
// un-numbered tags.
func (d *Document) GetTagIndexed(name string, index int) (string, error) {
	pos := d.findTagIndexed(name, index)
	if pos < 0 {
		return "", ErrTagNotFound
	}
	return d.lines[pos].Value, nil
}

// SetTag replaces the value of the first tag matching name, preserving the
// line's position and casing. A tag not present yet is inserted at the
// anchor position (after the last tag of the same family, else just before
// the first section marker). Setting an empty value removes the tag.
func (d *Document) SetTag(name, value string) {
	d.setTag(name, NoIndex, value, d.findTag(name))
}

// SetTagIndexed is SetTag for a numbered tag, matching on (name, index)
func (d *Document) SetTagIndexed(name string, index int, value string) {
	var pos []int
	if p := d.findTagIndexed(name, index); p >= 0 {
		pos = []int{p}
	}
	d.setTag(name, index, value, pos)
}

func (d *Document) setTag(name string, index int, value string, pos []int) {
	if value == "" {
		if len(pos) > 0 {
			d.removeAt(pos[0])
		}
		return
	}

	if len(pos) > 0 {
		line := d.lines[pos[0]]
		line.Text = line.Text[:line.valuePos] + value
		line.Value = value
		return
	}

	anchor := d.tagAnchor(name)
	d.insertAt(anchor, newTagLine(name, index, value, d.tagSeparatorAt(anchor, name, index)))
}

// RemoveTag deletes the first tag matching name. Deletion is idempotent:
// removing an absent tag is a no-op.
func (d *Document) RemoveTag(name string) {
	if pos := d.findTag(name); len(pos) > 0 {
		d.removeAt(pos[0])
	}
}

// RemoveTagIndexed deletes the tag matching (name, index), if present
func (d *Document) RemoveTagIndexed(name string, index int) {
	if pos := d.findTagIndexed(name, index); pos >= 0 {
		d.removeAt(pos)
	}
}

// FilterArchTags drops architecture/OS restriction tags under an explicit
// policy flag. With the flag unset this is a no-op: those tags are never
// removed unconditionally.
func (d *Document) FilterArchTags(pol Policy) {
	if !pol.FilterArchTags {
		return
	}
	kept := d.lines[:0]
	for _, line := range d.lines {
		if line.Kind == KindTag && archRestrictionTags[line.TagName] {
			continue
		}
		kept = append(kept, line)
	}
	d.lines = kept
}

// tagFamily groups tags clustering together in the preamble: all Source*
// and Patch* tags form one family, any other tag is its own family
func tagFamily(name string) string {
	switch tagKey(name) {
	case "source", "patch":
		return "sourcepatch"
	}
	return tagKey(name)
}

// tagAnchor computes the deterministic insertion point for a tag with no
// prior occurrence: scanning backward from the first section marker, just
// after the last tag of the same family; with no family member present,
// just before the first section marker.
func (d *Document) tagAnchor(name string) int {
	family := tagFamily(name)
	limit := d.firstSection()
	for i := limit - 1; i >= 0; i-- {
		line := d.lines[i]
		if line.Kind == KindTag && tagFamily(line.TagName) == family {
			return i + 1
		}
	}
	return limit
}

// newTagLine builds a tag line. separator overrides the default ": "
// between name and value (used to mimic a neighbour's padding).
func newTagLine(name string, index int, value, separator string) *Line {
	written := canonicalTagCase(name)
	if index != NoIndex {
		written += strconv.Itoa(index)
	}
	if separator == "" {
		separator = ": "
	}
	text := written + separator + value
	return &Line{
		Kind:     KindTag,
		Text:     text,
		TagName:  tagKey(name),
		TagIndex: index,
		Value:    value,
		valuePos: len(written) + len(separator),
	}
}
