package mock

import "github.com/fwojciec/webcheck"

var _ webcheck.ChangeDetector = (*ChangeDetector)(nil)

// ChangeDetector is a mock implementation of webcheck.ChangeDetector.
type ChangeDetector struct {
	DetectFn func(old *string, new string) webcheck.Change
}

func (d *ChangeDetector) Detect(old *string, new string) webcheck.Change {
	return d.DetectFn(old, new)
}
