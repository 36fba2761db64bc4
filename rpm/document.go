// Package rpm implements parsing and round-trip editing of RPM spec files
package rpm

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies a single line of a spec file
type LineKind int

// Line kinds, matched exhaustively by all Document operations
const (
	// KindOpaque is verbatim content the model doesn't interpret
	// (shell snippets, macro definitions, empty lines)
	KindOpaque LineKind = iota
	KindTag
	KindSection
	KindConditional
	KindComment
	KindPatchMacro
)

// NoIndex marks an un-numbered tag (Patch:) or %patch macro
const NoIndex = -1

// CondKind distinguishes conditional directives
type CondKind int

// Conditional directive kinds
const (
	CondNone CondKind = iota
	CondIf
	CondElif
	CondElse
	CondEndif
)

// Line is a single spec file line classified into the tagged variant model.
// Text is kept verbatim so that untouched lines re-serialize byte-identically.
type Line struct {
	Kind LineKind
	Text string // verbatim, without trailing newline

	// KindTag
	TagName  string // canonical (lower-case) name without numeric suffix
	TagIndex int    // numeric suffix (Source0), NoIndex when bare
	Value    string
	valuePos int // offset of the value within Text

	// KindSection
	Section string // e.g. "prep", "files"

	// KindConditional
	Cond     CondKind
	CondWord string // "if", "ifarch", "ifos", ...
	CondExpr string

	// KindComment: tool directives (# Gbp-Ignore-Patches: ...)
	Directive    string // canonical directive name without the Gbp- prefix
	DirectiveArg string

	// KindPatchMacro
	MacroIndex int // %patchN suffix, NoIndex when bare
	MacroArgs  string
}

var (
	tagRe        = regexp.MustCompile(`^([A-Za-z][A-Za-z_]*?)([0-9]*)(\([A-Za-z, ]+\))?(\s*:\s*)(.*?)\s*$`)
	sectionRe    = regexp.MustCompile(`^%(description|package|prep|generate_buildrequires|build|install|check|clean|files|changelog|pretrans|posttrans|preun|postun|pre|post|triggerin|triggerun|triggerpostun|verifyscript|sourcelist|patchlist)(\s.*)?$`)
	condOpenRe   = regexp.MustCompile(`^%(ifarch|ifnarch|ifos|ifnos|if)(\s+(.*?))?\s*$`)
	condElifRe   = regexp.MustCompile(`^%(elifarch|elifos|elif)(\s+(.*?))?\s*$`)
	condElseRe   = regexp.MustCompile(`^%else\s*$`)
	condEndifRe  = regexp.MustCompile(`^%endif\s*$`)
	patchMacroRe = regexp.MustCompile(`^%patch([0-9]*)((?:\s+.*)?)$`)
	setupMacroRe = regexp.MustCompile(`^%setup(\s.*)?$`)
	directiveRe  = regexp.MustCompile(`(?i)^#\s*gbp-([a-z-]+)\s*:?\s*(.*?)\s*$`)
)

// Document is an ordered, queryable, mutable representation of a spec file.
// Each Parse produces an independent, exclusively-owned Document; there is
// no shared state between instances.
type Document struct {
	lines        []*Line
	finalNewline bool
}

// Parse reads and classifies a full spec file
func Parse(r io.Reader) (*Document, error) {
	buf := &strings.Builder{}
	if _, err := io.Copy(buf, bufio.NewReader(r)); err != nil {
		return nil, err
	}
	return ParseString(buf.String())
}

// ParseString classifies input into Lines, tracking conditional nesting.
// It returns *MalformedDocumentError (and no Document) when a conditional
// block is unterminated or a preamble line doesn't follow the tag grammar.
func ParseString(text string) (*Document, error) {
	doc := &Document{}

	raw := strings.Split(text, "\n")
	if n := len(raw); n > 0 && raw[n-1] == "" {
		doc.finalNewline = true
		raw = raw[:n-1]
	}

	// Line numbers of unmatched conditional opens
	var condStack []int
	// Tags are only recognized in the preamble (and %package sub-preambles)
	inPreamble := true

	for i, text := range raw {
		lineNo := i + 1
		line := &Line{Kind: KindOpaque, Text: text}

		switch {
		case strings.HasPrefix(text, "#"):
			line.Kind = KindComment
			if m := directiveRe.FindStringSubmatch(text); m != nil {
				line.Directive = strings.ToLower(m[1])
				line.DirectiveArg = m[2]
			}

		case strings.HasPrefix(text, "%"):
			if m := condOpenRe.FindStringSubmatch(text); m != nil {
				line.Kind = KindConditional
				line.Cond = CondIf
				line.CondWord = m[1]
				line.CondExpr = m[3]
				condStack = append(condStack, lineNo)
			} else if m := condElifRe.FindStringSubmatch(text); m != nil {
				line.Kind = KindConditional
				line.Cond = CondElif
				line.CondWord = m[1]
				line.CondExpr = m[3]
				if len(condStack) == 0 {
					return nil, &MalformedDocumentError{LineNo: lineNo, Reason: "%" + m[1] + " without matching %if"}
				}
			} else if condElseRe.MatchString(text) {
				line.Kind = KindConditional
				line.Cond = CondElse
				if len(condStack) == 0 {
					return nil, &MalformedDocumentError{LineNo: lineNo, Reason: "%else without matching %if"}
				}
			} else if condEndifRe.MatchString(text) {
				line.Kind = KindConditional
				line.Cond = CondEndif
				if len(condStack) == 0 {
					return nil, &MalformedDocumentError{LineNo: lineNo, Reason: "%endif without matching %if"}
				}
				condStack = condStack[:len(condStack)-1]
			} else if m := patchMacroRe.FindStringSubmatch(text); m != nil {
				line.Kind = KindPatchMacro
				line.MacroIndex = NoIndex
				if m[1] != "" {
					line.MacroIndex, _ = strconv.Atoi(m[1])
				}
				line.MacroArgs = strings.TrimSpace(m[2])
			} else if m := sectionRe.FindStringSubmatch(text); m != nil {
				line.Kind = KindSection
				line.Section = m[1]
				// %package re-opens a (sub-package) preamble
				inPreamble = m[1] == "package"
			}
			// anything else (%global, %define, %setup, ...) stays opaque

		case strings.TrimSpace(text) == "":
			// empty line, opaque

		default:
			if inPreamble {
				m := tagRe.FindStringSubmatchIndex(text)
				if m == nil {
					return nil, &MalformedDocumentError{LineNo: lineNo, Reason: "expected 'Tag: value'"}
				}
				line.Kind = KindTag
				line.TagName = strings.ToLower(text[m[2]:m[3]])
				line.TagIndex = NoIndex
				if digits := text[m[4]:m[5]]; digits != "" {
					line.TagIndex, _ = strconv.Atoi(digits)
				}
				// scriptlet qualifier (Requires(post):) is part of the key
				if m[6] >= 0 {
					line.TagName += strings.ToLower(text[m[6]:m[7]])
				}
				line.valuePos = m[10]
				line.Value = text[m[10]:m[11]]
			}
			// body content stays opaque
		}

		doc.lines = append(doc.lines, line)
	}

	if len(condStack) > 0 {
		return nil, &MalformedDocumentError{
			LineNo: condStack[len(condStack)-1],
			Reason: "unterminated conditional block",
		}
	}

	return doc, nil
}

// String re-emits the document, reproducing untouched lines verbatim
func (d *Document) String() string {
	buf := &strings.Builder{}
	for i, line := range d.lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line.Text)
	}
	if d.finalNewline && len(d.lines) > 0 {
		buf.WriteByte('\n')
	}
	return buf.String()
}

// WriteTo saves the document back to a stream
func (d *Document) WriteTo(w *bufio.Writer) error {
	_, err := w.WriteString(d.String())
	return err
}

// Len returns the number of lines in the document
func (d *Document) Len() int {
	return len(d.lines)
}

// Lines returns the ordered line sequence. The slice is owned by the
// Document and must not be modified by the caller.
func (d *Document) Lines() []*Line {
	return d.lines
}

// UndefinedTags lists tag names flagged by Gbp-Undefined-Tag directives
func (d *Document) UndefinedTags() []string {
	var tags []string
	for _, line := range d.lines {
		if line.Kind == KindComment && line.Directive == "undefined-tag" && line.DirectiveArg != "" {
			tags = append(tags, line.DirectiveArg)
		}
	}
	return tags
}

// ignoredPatches collects patch indices listed in Gbp-Ignore-Patches
// directive comments
func (d *Document) ignoredPatches() map[int]bool {
	ignored := make(map[int]bool)
	for _, line := range d.lines {
		if line.Kind != KindComment || line.Directive != "ignore-patches" {
			continue
		}
		for _, field := range strings.Fields(line.DirectiveArg) {
			if n, err := strconv.Atoi(field); err == nil {
				ignored[n] = true
			}
		}
	}
	return ignored
}

func (d *Document) insertAt(pos int, lines ...*Line) {
	d.lines = append(d.lines[:pos:pos], append(lines, d.lines[pos:]...)...)
}

func (d *Document) removeAt(pos int) {
	d.lines = append(d.lines[:pos], d.lines[pos+1:]...)
}

// firstSection returns the position of the first section marker, or Len()
func (d *Document) firstSection() int {
	for i, line := range d.lines {
		if line.Kind == KindSection {
			return i
		}
	}
	return len(d.lines)
}

// section returns the positions just after marker and at the end of the
// named section, or (-1, -1) if the section doesn't exist
func (d *Document) section(name string) (start, end int) {
	start = -1
	for i, line := range d.lines {
		if line.Kind != KindSection {
			continue
		}
		if start >= 0 {
			return start, i
		}
		if line.Section == name {
			start = i + 1
		}
	}
	if start >= 0 {
		return start, len(d.lines)
	}
	return -1, -1
}
