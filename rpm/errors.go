package rpm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Lookup errors
var (
	// ErrTagNotFound is returned when a tag lookup finds no matching tag
	ErrTagNotFound = errors.New("tag not found")
)

// MalformedDocumentError is a structural parse failure: the input can't be
// represented as a Document and no partial result is returned.
type MalformedDocumentError struct {
	LineNo int
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed spec, line %d: %s", e.LineNo, e.Reason)
}

// PatchNotFoundError is returned by RemovePatch when no patch with the
// requested index exists in the document.
type PatchNotFoundError struct {
	Index int
}

func (e *PatchNotFoundError) Error() string {
	return fmt.Sprintf("patch %d not found", e.Index)
}
