// Package diffmatchpatch implements webcheck.ChangeDetector on top of
// sergi/go-diff's diff-match-patch port.
package diffmatchpatch

import (
	"github.com/fwojciec/webcheck"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Ensure Detector implements webcheck.ChangeDetector at compile time.
var _ webcheck.ChangeDetector = (*Detector)(nil)

// DiffFunc computes the full, cleaned-up edit sequence between two texts.
type DiffFunc func(old, new string) []webcheck.Edit

// Detector compares page content with a character diff followed by a
// semantic cleanup pass.
type Detector struct {
	diff DiffFunc
}

// Option configures a Detector.
type Option func(*Detector)

// WithDiffFunc replaces the diff engine. Used to exercise the degraded path.
func WithDiffFunc(fn DiffFunc) Option {
	return func(d *Detector) {
		d.diff = fn
	}
}

// NewDetector creates a new Detector.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{diff: Diff}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect compares old with new. A nil old is a first observation and never
// counts as a change.
func (d *Detector) Detect(old *string, new string) webcheck.Change {
	if old == nil || *old == new {
		return webcheck.Change{}
	}

	edits, derr := d.safeDiff(*old, new)
	if derr != nil {
		return webcheck.Change{Changed: true, Degraded: derr}
	}

	return webcheck.Change{
		Changed: true,
		Edits:   webcheck.SignificantEdits(edits),
	}
}

// safeDiff runs the engine and converts a panic into a DiffError.
func (d *Detector) safeDiff(old, new string) (edits []webcheck.Edit, derr *webcheck.DiffError) {
	defer func() {
		if r := recover(); r != nil {
			edits = nil
			derr = &webcheck.DiffError{Cause: r}
		}
	}()
	return d.diff(old, new), nil
}

// Diff returns the full edit sequence from old to new, including unchanged
// fragments. Deleted and unchanged fragments concatenate to old; inserted
// and unchanged fragments concatenate to new.
func Diff(old, new string) []webcheck.Edit {
	dmp := diffmatchpatch.New()
	// No deadline, so the output never depends on machine speed.
	dmp.DiffTimeout = 0

	diffs := dmp.DiffMain(old, new, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	edits := make([]webcheck.Edit, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		edits = append(edits, webcheck.Edit{Kind: editKind(d.Type), Text: d.Text})
	}
	return edits
}

func editKind(op diffmatchpatch.Operation) webcheck.EditKind {
	switch op {
	case diffmatchpatch.DiffInsert:
		return webcheck.EditInserted
	case diffmatchpatch.DiffDelete:
		return webcheck.EditDeleted
	default:
		return webcheck.EditUnchanged
	}
}
