package rpm

import (
	"sort"
	"strconv"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// PatchEntry is a patch reference collected from PatchN: tags together with
// the annotations gathered during parse
type PatchEntry struct {
	Index    int
	Filename string
	// Strip is the -p level of the corresponding %patch invocation
	Strip int
	// Applied is true when a %patch invocation for this index exists
	Applied bool
	// Ignored is true when the index is listed in a Gbp-Ignore-Patches
	// directive comment, excluding the patch from automatic management
	Ignored bool
}

// effTagIndex maps an un-numbered Patch: tag to index 0, the way rpm does
func effTagIndex(line *Line) int {
	if line.TagIndex == NoIndex {
		return 0
	}
	return line.TagIndex
}

// macroTarget resolves the patch index a %patch invocation applies to,
// honoring both the %patchN suffix and the -P argument
func macroTarget(line *Line) int {
	if line.MacroIndex != NoIndex {
		return line.MacroIndex
	}
	if _, index := parsePatchMacroArgs(line.MacroArgs); index != NoIndex {
		return index
	}
	return 0
}

// parsePatchMacroArgs extracts the strip level (-p) and explicit patch
// number (-P) from %patch macro arguments
func parsePatchMacroArgs(args string) (strip, index int) {
	index = NoIndex
	words, err := shellwords.Parse(args)
	if err != nil {
		return 0, NoIndex
	}
	for i := 0; i < len(words); i++ {
		w := words[i]
		switch {
		case w == "-p" || w == "-P":
			if i+1 < len(words) {
				i++
				if n, err := strconv.Atoi(words[i]); err == nil {
					if w == "-p" {
						strip = n
					} else {
						index = n
					}
				}
			}
		case strings.HasPrefix(w, "-p"):
			if n, err := strconv.Atoi(w[2:]); err == nil {
				strip = n
			}
		case strings.HasPrefix(w, "-P"):
			if n, err := strconv.Atoi(w[2:]); err == nil {
				index = n
			}
		}
	}
	return strip, index
}

// Patches returns all patch entries in numeric order, annotated with the
// ignore set and %patch application state collected during parse
func (d *Document) Patches() []PatchEntry {
	byIndex := make(map[int]*PatchEntry)
	for _, line := range d.lines {
		if line.Kind != KindTag || line.TagName != "patch" {
			continue
		}
		index := effTagIndex(line)
		if _, dup := byIndex[index]; dup {
			continue
		}
		byIndex[index] = &PatchEntry{Index: index, Filename: line.Value}
	}

	for _, line := range d.lines {
		if line.Kind != KindPatchMacro {
			continue
		}
		if entry, ok := byIndex[macroTarget(line)]; ok {
			entry.Applied = true
			entry.Strip, _ = parsePatchMacroArgs(line.MacroArgs)
		}
	}

	for index := range d.ignoredPatches() {
		if entry, ok := byIndex[index]; ok {
			entry.Ignored = true
		}
	}

	indices := make([]int, 0, len(byIndex))
	for index := range byIndex {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	entries := make([]PatchEntry, 0, len(byIndex))
	for _, index := range indices {
		entries = append(entries, *byIndex[index])
	}
	return entries
}

// AddPatch appends a patch to the patch list following the numbering
// policy: under NumberedPatches the lowest unused non-negative index is
// assigned, under BarePatches the tag is appended without an index and
// NoIndex is returned. When the policy manages application macros, a
// corresponding %patch invocation is inserted in %prep as well.
func (d *Document) AddPatch(filename string, pol Policy) int {
	index := NoIndex
	if pol.PatchNumbering == NumberedPatches {
		used := d.ignoredPatches()
		for _, entry := range d.Patches() {
			used[entry.Index] = true
		}
		for index = 0; used[index] || pol.ignoresPatch(index); index++ {
		}
	}

	pos := d.tagAnchor("patch")
	line := newTagLine("patch", index, filename, d.tagSeparatorAt(pos, "patch", index))
	d.insertAt(pos, line)

	if pol.PatchMacros {
		d.insertPatchMacro(index)
	}
	return index
}

// tagSeparatorAt mimics the name/value padding of the tag line right above
// the insertion point, keeping the value column aligned
func (d *Document) tagSeparatorAt(pos int, name string, index int) string {
	if pos == 0 || d.lines[pos-1].Kind != KindTag {
		return ""
	}
	written := canonicalTagCase(name)
	if index != NoIndex {
		written += strconv.Itoa(index)
	}
	pad := d.lines[pos-1].valuePos - len(written) - 1
	if pad < 1 {
		return ""
	}
	return ":" + strings.Repeat(" ", pad)
}

// insertPatchMacro places a %patch invocation in the prep section: after
// the Gbp-Patch-Macros marker region when the document carries one, else
// after the last %patch invocation, else right after %setup
func (d *Document) insertPatchMacro(index int) {
	text := "%patch -p1"
	macroIndex := NoIndex
	if index != NoIndex {
		text = "%patch" + strconv.Itoa(index) + " -p1"
		macroIndex = index
	}
	line := &Line{
		Kind:       KindPatchMacro,
		Text:       text,
		MacroIndex: macroIndex,
		MacroArgs:  "-p1",
	}

	lastMacro, marker, setup := -1, -1, -1
	for i, l := range d.lines {
		switch {
		case l.Kind == KindPatchMacro:
			lastMacro = i
		case l.Kind == KindComment && l.Directive == "patch-macros":
			marker = i
		case l.Kind == KindOpaque && setupMacroRe.MatchString(l.Text):
			setup = i
		}
	}

	switch {
	case marker >= 0:
		if lastMacro > marker {
			d.insertAt(lastMacro+1, line)
		} else {
			d.insertAt(marker+1, line)
		}
	case lastMacro >= 0:
		d.insertAt(lastMacro+1, line)
	case setup >= 0:
		d.insertAt(setup+1, line)
	}
	// without %prep scaffolding there is nowhere to apply patches
}

// RemovePatch removes both the PatchN: tag and its %patch invocation.
// It returns *PatchNotFoundError (leaving the document untouched) when no
// patch with the given index exists.
func (d *Document) RemovePatch(index int) error {
	var remove []int
	found := false
	for i, line := range d.lines {
		switch {
		case line.Kind == KindTag && line.TagName == "patch" && effTagIndex(line) == index:
			found = true
			remove = append(remove, i)
		case line.Kind == KindPatchMacro && macroTarget(line) == index:
			remove = append(remove, i)
		}
	}
	if !found {
		return &PatchNotFoundError{Index: index}
	}
	for i := len(remove) - 1; i >= 0; i-- {
		d.removeAt(remove[i])
	}
	return nil
}

// Sources returns all SourceN: tags in numeric order
func (d *Document) Sources() []PatchEntry {
	byIndex := make(map[int]*PatchEntry)
	for _, line := range d.lines {
		if line.Kind != KindTag || line.TagName != "source" {
			continue
		}
		index := effTagIndex(line)
		if _, dup := byIndex[index]; dup {
			continue
		}
		byIndex[index] = &PatchEntry{Index: index, Filename: line.Value}
	}

	indices := make([]int, 0, len(byIndex))
	for index := range byIndex {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	entries := make([]PatchEntry, 0, len(byIndex))
	for _, index := range indices {
		entries = append(entries, *byIndex[index])
	}
	return entries
}
