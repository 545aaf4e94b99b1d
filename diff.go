package webcheck

import "fmt"

// EditKind tags a diff fragment.
type EditKind string

// EditKind constants.
const (
	EditUnchanged EditKind = "unchanged"
	EditInserted  EditKind = "inserted"
	EditDeleted   EditKind = "deleted"
)

// Edit is one contiguous diff fragment.
type Edit struct {
	Kind EditKind `json:"kind"`
	Text string   `json:"text"`
}

// Change is the result of comparing stored content with fresh content.
type Change struct {
	Changed bool

	// Edits holds the significant fragments: every fragment of the full diff
	// that is not EditUnchanged, in order.
	Edits []Edit

	// Degraded is set when the diff engine failed. Changed is still true in
	// that case and Edits is empty.
	Degraded *DiffError
}

// ChangeDetector compares stored content against freshly extracted content.
type ChangeDetector interface {
	// Detect returns Changed=false when old is nil (first observation) or
	// equal to new. It must not panic and must be deterministic.
	Detect(old *string, new string) Change
}

// DiffError reports an internal failure of the diff engine.
type DiffError struct {
	Cause any
}

// Error implements the error interface.
func (e *DiffError) Error() string {
	return fmt.Sprintf("diff engine failure: %v", e.Cause)
}

// SignificantEdits returns the fragments of edits that are not unchanged.
func SignificantEdits(edits []Edit) []Edit {
	var out []Edit
	for _, e := range edits {
		if e.Kind != EditUnchanged {
			out = append(out, e)
		}
	}
	return out
}
