package rpm

// PatchNumbering selects how AddPatch names new patch tags
type PatchNumbering int

// Patch numbering policies
const (
	// NumberedPatches assigns the lowest unused non-negative index (PatchN:)
	NumberedPatches PatchNumbering = iota
	// BarePatches appends un-numbered Patch: tags
	BarePatches
)

// Policy is the resolved, immutable editing policy passed into Document
// operations. It is built by the caller (usually from configuration) and
// never read from process-wide state.
type Policy struct {
	PatchNumbering PatchNumbering
	// PatchMacros enables automatic %patch invocation management in %prep
	PatchMacros bool
	// FilterArchTags enables dropping of architecture/OS restriction tags
	// (BuildArch, ExcludeArch, ExclusiveArch, ExcludeOS, ExclusiveOS)
	FilterArchTags bool
	// IgnorePatches lists patch indices excluded from automatic management,
	// merged with Gbp-Ignore-Patches annotations found in the document
	IgnorePatches []int
}

// DefaultPolicy mirrors the stock configuration template
var DefaultPolicy = Policy{
	PatchNumbering: NumberedPatches,
	PatchMacros:    true,
}

func (p Policy) ignoresPatch(index int) bool {
	for _, i := range p.IgnorePatches {
		if i == index {
			return true
		}
	}
	return false
}
